package metrics

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Metrics struct {
	startTime time.Time

	commandsTotal   atomic.Int64
	commandsSuccess atomic.Int64
	commandsFailed  atomic.Int64

	modelRequests atomic.Int64
	modelFailures atomic.Int64

	tokensPrompt     atomic.Int64
	tokensCompletion atomic.Int64

	toolCallsTotal     atomic.Int64
	toolCallsSuccess   atomic.Int64
	toolCallsFailed    atomic.Int64
	toolCallsCancelled atomic.Int64

	responseTimes     []time.Duration
	responseTimesLock sync.Mutex

	toolCalls map[string]*atomic.Int64
	toolLock  sync.Mutex
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

func Default() *Metrics {
	once.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}

func New() *Metrics {
	return &Metrics{
		startTime:     time.Now(),
		responseTimes: make([]time.Duration, 0, 1000),
		toolCalls:     make(map[string]*atomic.Int64),
	}
}

func (m *Metrics) RecordCommand(success bool) {
	m.commandsTotal.Add(1)
	if success {
		m.commandsSuccess.Add(1)
	} else {
		m.commandsFailed.Add(1)
	}
}

func (m *Metrics) RecordModelRequest(success bool) {
	m.modelRequests.Add(1)
	if !success {
		m.modelFailures.Add(1)
	}
}

func (m *Metrics) RecordTokens(prompt, completion int64) {
	m.tokensPrompt.Add(prompt)
	m.tokensCompletion.Add(completion)
}

func (m *Metrics) RecordToolCall(name string, success bool) {
	m.toolCallsTotal.Add(1)
	if success {
		m.toolCallsSuccess.Add(1)
	} else {
		m.toolCallsFailed.Add(1)
	}

	m.toolLock.Lock()
	defer m.toolLock.Unlock()

	if m.toolCalls[name] == nil {
		m.toolCalls[name] = &atomic.Int64{}
	}
	m.toolCalls[name].Add(1)
}

func (m *Metrics) RecordToolCancelled() {
	m.toolCallsCancelled.Add(1)
}

func (m *Metrics) RecordResponseTime(d time.Duration) {
	m.responseTimesLock.Lock()
	defer m.responseTimesLock.Unlock()

	m.responseTimes = append(m.responseTimes, d)
	if len(m.responseTimes) > 1000 {
		m.responseTimes = m.responseTimes[1:]
	}
}

type Snapshot struct {
	Uptime             time.Duration    `json:"uptime"`
	CommandsTotal      int64            `json:"commands_total"`
	CommandsSuccess    int64            `json:"commands_success"`
	CommandsFailed     int64            `json:"commands_failed"`
	ModelRequests      int64            `json:"model_requests"`
	ModelFailures      int64            `json:"model_failures"`
	TokensPrompt       int64            `json:"tokens_prompt"`
	TokensCompletion   int64            `json:"tokens_completion"`
	ToolCallsTotal     int64            `json:"tool_calls_total"`
	ToolCallsSuccess   int64            `json:"tool_calls_success"`
	ToolCallsFailed    int64            `json:"tool_calls_failed"`
	ToolCallsCancelled int64            `json:"tool_calls_cancelled"`
	AvgResponseTime    time.Duration    `json:"avg_response_time"`
	ToolCalls          map[string]int64 `json:"tool_calls"`
}

func (m *Metrics) Snapshot() *Snapshot {
	s := &Snapshot{
		Uptime:             time.Since(m.startTime),
		CommandsTotal:      m.commandsTotal.Load(),
		CommandsSuccess:    m.commandsSuccess.Load(),
		CommandsFailed:     m.commandsFailed.Load(),
		ModelRequests:      m.modelRequests.Load(),
		ModelFailures:      m.modelFailures.Load(),
		TokensPrompt:       m.tokensPrompt.Load(),
		TokensCompletion:   m.tokensCompletion.Load(),
		ToolCallsTotal:     m.toolCallsTotal.Load(),
		ToolCallsSuccess:   m.toolCallsSuccess.Load(),
		ToolCallsFailed:    m.toolCallsFailed.Load(),
		ToolCallsCancelled: m.toolCallsCancelled.Load(),
		ToolCalls:          make(map[string]int64),
	}

	m.responseTimesLock.Lock()
	if len(m.responseTimes) > 0 {
		var total time.Duration
		for _, rt := range m.responseTimes {
			total += rt
		}
		s.AvgResponseTime = total / time.Duration(len(m.responseTimes))
	}
	m.responseTimesLock.Unlock()

	m.toolLock.Lock()
	for k, v := range m.toolCalls {
		s.ToolCalls[k] = v.Load()
	}
	m.toolLock.Unlock()

	return s
}

func (m *Metrics) Prometheus() string {
	var sb strings.Builder

	sb.WriteString("# HELP aigenda_uptime_seconds Time since process start\n")
	sb.WriteString("# TYPE aigenda_uptime_seconds gauge\n")
	sb.WriteString("aigenda_uptime_seconds " + strconv.FormatInt(int64(time.Since(m.startTime).Seconds()), 10) + "\n\n")

	sb.WriteString("# HELP aigenda_commands_total Total agent commands\n")
	sb.WriteString("# TYPE aigenda_commands_total counter\n")
	sb.WriteString("aigenda_commands_total " + strconv.FormatInt(m.commandsTotal.Load(), 10) + "\n\n")

	sb.WriteString("# HELP aigenda_model_requests_total Model API requests\n")
	sb.WriteString("# TYPE aigenda_model_requests_total counter\n")
	sb.WriteString("aigenda_model_requests_total " + strconv.FormatInt(m.modelRequests.Load(), 10) + "\n\n")

	sb.WriteString("# HELP aigenda_model_failures_total Failed model API requests\n")
	sb.WriteString("# TYPE aigenda_model_failures_total counter\n")
	sb.WriteString("aigenda_model_failures_total " + strconv.FormatInt(m.modelFailures.Load(), 10) + "\n\n")

	sb.WriteString("# HELP aigenda_tokens_prompt_total Estimated prompt tokens\n")
	sb.WriteString("# TYPE aigenda_tokens_prompt_total counter\n")
	sb.WriteString("aigenda_tokens_prompt_total " + strconv.FormatInt(m.tokensPrompt.Load(), 10) + "\n\n")

	sb.WriteString("# HELP aigenda_tokens_completion_total Estimated completion tokens\n")
	sb.WriteString("# TYPE aigenda_tokens_completion_total counter\n")
	sb.WriteString("aigenda_tokens_completion_total " + strconv.FormatInt(m.tokensCompletion.Load(), 10) + "\n\n")

	sb.WriteString("# HELP aigenda_tool_calls_total Total tool calls\n")
	sb.WriteString("# TYPE aigenda_tool_calls_total counter\n")
	sb.WriteString("aigenda_tool_calls_total " + strconv.FormatInt(m.toolCallsTotal.Load(), 10) + "\n\n")

	sb.WriteString("# HELP aigenda_tool_calls_cancelled_total Tool calls declined by the user\n")
	sb.WriteString("# TYPE aigenda_tool_calls_cancelled_total counter\n")
	sb.WriteString("aigenda_tool_calls_cancelled_total " + strconv.FormatInt(m.toolCallsCancelled.Load(), 10) + "\n\n")

	m.toolLock.Lock()
	for name, count := range m.toolCalls {
		sb.WriteString("# HELP aigenda_tool_invocations_total Invocations per tool.action\n")
		sb.WriteString("# TYPE aigenda_tool_invocations_total counter\n")
		sb.WriteString("aigenda_tool_invocations_total{tool=\"" + name + "\"} " + strconv.FormatInt(count.Load(), 10) + "\n\n")
	}
	m.toolLock.Unlock()

	return sb.String()
}

func RecordCommand(success bool) {
	Default().RecordCommand(success)
}

func RecordModelRequest(success bool) {
	Default().RecordModelRequest(success)
}

func RecordTokens(prompt, completion int64) {
	Default().RecordTokens(prompt, completion)
}

func RecordToolCall(name string, success bool) {
	Default().RecordToolCall(name, success)
}

func RecordToolCancelled() {
	Default().RecordToolCancelled()
}

func RecordResponseTime(d time.Duration) {
	Default().RecordResponseTime(d)
}

func Prometheus() string {
	return Default().Prometheus()
}
