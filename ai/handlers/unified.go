package handlers

import (
	"fmt"

	"google.golang.org/genai"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/ai/tools"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/models"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/schemas"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/stores"
)

// resolver is one tool domain's name-to-handler lookup.
type resolver interface {
	Resolve(name string) (handlerFunc, bool)
}

// UnifiedHandler dispatches tool calls across every domain. It never
// returns an error: unknown tools, bad arguments and handler failures all
// become result strings the model can read.
type UnifiedHandler struct {
	domains []resolver
}

func NewUnifiedHandler(store stores.Store, user *models.User) *UnifiedHandler {
	return &UnifiedHandler{
		domains: []resolver{
			NewContactHandler(store, user),
			NewRecordHandler(store, user),
		},
	}
}

// Tools returns the full declaration catalog matching the dispatch table.
func (u *UnifiedHandler) Tools() []*genai.Tool {
	return tools.AllTools()
}

// HandleToolCall runs one function call and returns the result text along
// with the call record for the event stream.
func (u *UnifiedHandler) HandleToolCall(call *genai.FunctionCall) (string, schemas.ToolCall) {
	name := "None"
	args := map[string]any{}
	if call != nil {
		if call.Name != "" {
			name = call.Name
		}
		if call.Args != nil {
			args = call.Args
		}
	}

	result := u.execute(name, args)
	return result, schemas.ToolCall{Name: name, Arguments: args, Result: result}
}

func (u *UnifiedHandler) execute(name string, args map[string]any) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("執行 %s 時發生錯誤: %v", name, r)
		}
	}()

	for _, domain := range u.domains {
		fn, ok := domain.Resolve(name)
		if !ok {
			continue
		}
		out, err := fn(args)
		if err != nil {
			return fmt.Sprintf("執行 %s 時發生錯誤: %v", name, err)
		}
		return out
	}
	return fmt.Sprintf("未知的工具功能: %s", name)
}
