// Package mcp provides an MCP (Model Context Protocol) server that
// exposes the task store and memory bank as tools for AI coding
// assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tosin2013/prompt-manager/internal/storage"
	"github.com/tosin2013/prompt-manager/pkg/models"
)

// Server wraps the task store and memory bank and exposes them as MCP
// tools over stdio.
type Server struct {
	server *gomcp.Server
	store  storage.TaskStore
	bank   *storage.MemoryBank
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(store storage.TaskStore, bank *storage.MemoryBank, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{store: store, bank: bank}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "prompt-manager", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type taskOutput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	DueDate      string   `json:"due_date,omitempty"`
	Notes        []string `json:"notes,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Created      string   `json:"created"`
	Updated      string   `json:"updated"`
}

type listTasksInput struct {
	Status string `json:"status,omitempty" jsonschema:"filter tasks by status (pending, in_progress, done, failed, blocked)"`
	SortBy string `json:"sort_by,omitempty" jsonschema:"sort key (priority, created, updated)"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type addTaskInput struct {
	Title       string `json:"title" jsonschema:"required,the unique task title"`
	Description string `json:"description,omitempty" jsonschema:"free-text task description"`
	Priority    string `json:"priority,omitempty" jsonschema:"task priority (low, medium, high). Defaults to medium."`
}

type addTaskOutput struct {
	Message string `json:"message"`
}

type updateProgressInput struct {
	Title  string `json:"title" jsonschema:"required,the task title"`
	Status string `json:"status" jsonschema:"required,the new status (pending, in_progress, done, failed, blocked)"`
	Note   string `json:"note,omitempty" jsonschema:"optional progress note appended to the task"`
}

type updateProgressOutput struct {
	Message string `json:"message"`
}

type memoryReadInput struct {
	File string `json:"file" jsonschema:"required,memory bank file name (productContext.md, activeContext.md, systemPatterns.md, techContext.md, progress.md)"`
}

type memoryReadOutput struct {
	File    string `json:"file"`
	Content string `json:"content"`
}

type memoryUpdateInput struct {
	File    string `json:"file" jsonschema:"required,memory bank file name"`
	Section string `json:"section" jsonschema:"required,the ## section to update"`
	Content string `json:"content" jsonschema:"required,the content to write"`
	Mode    string `json:"mode,omitempty" jsonschema:"append or replace. Defaults to append."`
}

type memoryUpdateOutput struct {
	Message string `json:"message"`
	Tokens  int    `json:"tokens"`
	AtLimit bool   `json:"at_limit"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks with optional status filter and sort key. Returns full task records.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Add a new task. The title must be unique within the project.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_progress",
		Description: "Update a task's status with an optional timestamped note. Valid statuses: pending, in_progress, done, failed, blocked.",
	}, s.handleUpdateProgress)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "memory_read",
		Description: "Read one of the memory bank's markdown files.",
	}, s.handleMemoryRead)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "memory_update",
		Description: "Append to or replace a ## section of a memory bank file.",
	}, s.handleMemoryUpdate)
}

// --- Tool handlers ---

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	tasks, err := s.store.List(storage.ListOptions{
		Status: models.TaskStatus(input.Status),
		SortBy: input.SortBy,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		out.Tasks[i] = taskToOutput(&t)
	}
	return nil, out, nil
}

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, addTaskOutput, error) {
	if input.Title == "" {
		return errorResult("title is required"), addTaskOutput{}, nil
	}

	task := models.NewTask(input.Title, input.Description)
	if input.Priority != "" {
		task.Priority = models.Priority(input.Priority)
	}

	if _, err := s.store.Add(task); err != nil {
		return errorResult(fmt.Sprintf("adding task %q: %s", input.Title, err)), addTaskOutput{}, nil
	}
	return nil, addTaskOutput{Message: fmt.Sprintf("task %q added", input.Title)}, nil
}

func (s *Server) handleUpdateProgress(_ context.Context, _ *gomcp.CallToolRequest, input updateProgressInput) (*gomcp.CallToolResult, updateProgressOutput, error) {
	if input.Title == "" {
		return errorResult("title is required"), updateProgressOutput{}, nil
	}
	if input.Status == "" {
		return errorResult("status is required"), updateProgressOutput{}, nil
	}

	if _, err := s.store.UpdateStatus(input.Title, models.TaskStatus(input.Status), input.Note); err != nil {
		return errorResult(fmt.Sprintf("updating task %q: %s", input.Title, err)), updateProgressOutput{}, nil
	}
	return nil, updateProgressOutput{
		Message: fmt.Sprintf("task %q status updated to %s", input.Title, input.Status),
	}, nil
}

func (s *Server) handleMemoryRead(_ context.Context, _ *gomcp.CallToolRequest, input memoryReadInput) (*gomcp.CallToolResult, memoryReadOutput, error) {
	if input.File == "" {
		return errorResult("file is required"), memoryReadOutput{}, nil
	}

	content, err := s.bank.ReadFile(input.File)
	if err != nil {
		return errorResult(fmt.Sprintf("reading %s: %s", input.File, err)), memoryReadOutput{}, nil
	}
	return nil, memoryReadOutput{File: input.File, Content: content}, nil
}

func (s *Server) handleMemoryUpdate(_ context.Context, _ *gomcp.CallToolRequest, input memoryUpdateInput) (*gomcp.CallToolResult, memoryUpdateOutput, error) {
	if input.File == "" || input.Section == "" {
		return errorResult("file and section are required"), memoryUpdateOutput{}, nil
	}
	if !s.bank.IsActive() {
		return errorResult("memory bank not initialized (run 'pm init' first)"), memoryUpdateOutput{}, nil
	}

	mode := input.Mode
	if mode == "" {
		mode = storage.ModeAppend
	}

	if err := s.bank.UpdateContext(input.File, input.Section, input.Content, mode); err != nil {
		return errorResult(fmt.Sprintf("updating %s: %s", input.File, err)), memoryUpdateOutput{}, nil
	}
	return nil, memoryUpdateOutput{
		Message: fmt.Sprintf("section %q of %s updated", input.Section, input.File),
		Tokens:  s.bank.CurrentTokens(),
		AtLimit: s.bank.CheckTokenLimit(),
	}, nil
}

// --- Helpers ---

func taskToOutput(t *models.Task) taskOutput {
	return taskOutput{
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		DueDate:      t.DueDate,
		Notes:        t.Notes,
		Dependencies: t.Dependencies,
		Created:      t.CreatedAt.Format(time.RFC3339),
		Updated:      t.UpdatedAt.Format(time.RFC3339),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		IsError: true,
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
	}
}
