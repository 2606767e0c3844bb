package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aigenda/aigenda/internal/config"
	"github.com/aigenda/aigenda/internal/memory"
	"github.com/aigenda/aigenda/internal/tools"
)

// ChatClient is the model transport the agent drives.
type ChatClient interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Agent runs the iterative tool-calling loop over a chat model.
type Agent struct {
	registry      *tools.Registry
	client        ChatClient
	memory        *memory.Memory
	executor      *ToolExecutor
	prompts       *PromptGenerator
	logger        *zap.Logger
	sessionID     string
	memoryPath    string
	maxIterations int
}

// Options configures a new Agent.
type Options struct {
	Config   *config.Config
	Registry *tools.Registry
	Client   ChatClient
	Logger   *zap.Logger
}

// New creates an agent, loading persisted conversation memory from the
// configured path.
func New(opts Options) (*Agent, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mem, err := memory.Load(opts.Config.Memory.Path,
		opts.Config.Memory.MaxMessages, opts.Config.Memory.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation memory: %w", err)
	}

	maxIterations := opts.Config.Agent.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 5
	}

	return &Agent{
		registry:      opts.Registry,
		client:        opts.Client,
		memory:        mem,
		executor:      NewToolExecutor(),
		prompts:       NewPromptGenerator(),
		logger:        logger,
		sessionID:     uuid.New().String(),
		memoryPath:    opts.Config.Memory.Path,
		maxIterations: maxIterations,
	}, nil
}

// Execute runs the full loop for one user request and returns the combined
// conversation text of all iterations. Memory is persisted before returning,
// even when the loop ends early on an error.
func (a *Agent) Execute(ctx context.Context, userInput string, handler StreamHandler) (string, error) {
	a.logger.Debug("starting agent execution",
		zap.String("session_id", a.sessionID),
		zap.Int("max_iterations", a.maxIterations))

	a.memory.AddUser(userInput)

	var conversation []string
	executionContext := ""

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		handler.OnIterationStart(iteration)

		var prompt string
		if iteration == 1 {
			prompt = a.prompts.Initial(userInput, a.memory, a.registry)
		} else {
			prompt = a.prompts.Continuation(userInput, executionContext, a.memory, a.registry)
		}

		reply, err := a.client.Chat(ctx, prompt)
		if err != nil {
			a.saveMemory()
			return strings.Join(conversation, "\n\n---\n\n"),
				fmt.Errorf("model request failed on iteration %d: %w", iteration, err)
		}

		handler.OnLLMResponse(reply)

		calls, results, transcript, err := a.executor.Execute(ctx, reply, a.registry, handler)
		if err != nil {
			a.saveMemory()
			return strings.Join(conversation, "\n\n---\n\n"),
				fmt.Errorf("tool execution failed on iteration %d: %w", iteration, err)
		}

		a.memory.AddAssistant(reply, calls)
		a.memory.AttachResults(results)

		iterationResult := reply
		if transcript != "" {
			iterationResult += "\n\n**Tool Results:**\n" + transcript
		}
		conversation = append(conversation, iterationResult)

		// The execution history carries the full iteration result, prose
		// included, not just the tool transcript.
		executionContext += fmt.Sprintf("\nIteration %d:\n%s\n", iteration, iterationResult)

		handler.OnIterationEnd(iteration)

		if transcript == "" || !ShouldContinue(reply) {
			break
		}

		a.logger.Debug("continuing to next iteration",
			zap.Int("iteration", iteration),
			zap.Int("tool_calls", len(calls)))
	}

	a.saveMemory()

	return strings.Join(conversation, "\n\n---\n\n"), nil
}

func (a *Agent) saveMemory() {
	if err := a.memory.Save(a.memoryPath); err != nil {
		a.logger.Warn("failed to persist conversation memory", zap.Error(err))
	}
}

// ListTools returns the registered tool names.
func (a *Agent) ListTools() []string {
	return a.registry.List()
}

// ClearMemory discards the retained conversation and persists the empty log.
func (a *Agent) ClearMemory() error {
	a.memory.Clear()
	return a.memory.Save(a.memoryPath)
}

// MemoryStats reports the retained message count and token estimate.
func (a *Agent) MemoryStats() (messages, tokens int) {
	return a.memory.MessageCount(), a.memory.TokenEstimate()
}

// History returns a copy of the retained conversation log.
func (a *Agent) History() []memory.Message {
	return a.memory.Messages()
}
