package common

import (
	"encoding/json"
	"strings"

	"gymdesk.io/backoffice/utils"
)

// Bedrock agent action-group payloads, so a job can also be invoked as an agent tool.

type BedrockParameter struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type BedrockEvent struct {
	ActionGroup string             `json:"actionGroup"`
	ApiPath     string             `json:"apiPath"`
	HTTPMethod  string             `json:"httpMethod"`
	Function    string             `json:"function"`
	Parameters  []BedrockParameter `json:"parameters"`
}

type BedrockFunctionResponse struct {
	ResponseBody interface{} `json:"responseBody"`
}

type BedrockResponseContainer struct {
	ActionGroup      string                  `json:"actionGroup"`
	Function         string                  `json:"function"`
	FunctionResponse BedrockFunctionResponse `json:"functionResponse"`
}

type BedrockOutput struct {
	MessageVersion string                   `json:"messageVersion"`
	Response       BedrockResponseContainer `json:"response"`
}

// ParseBedrockEvent reports whether raw is an agent invocation.
func ParseBedrockEvent(raw []byte) (*BedrockEvent, bool) {
	var e BedrockEvent
	if err := json.Unmarshal(raw, &e); err != nil || e.ActionGroup == "" {
		return nil, false
	}
	return &e, true
}

func (e *BedrockEvent) GetParameter(name string) string {
	for _, p := range e.Parameters {
		if strings.EqualFold(p.Name, name) {
			return p.Value
		}
	}
	return ""
}

func (e *BedrockEvent) GetBool(name string) bool {
	return strings.EqualFold(e.GetParameter(name), "true")
}

// GetList splits a comma separated parameter. Nil when absent or empty.
func (e *BedrockEvent) GetList(name string) []string {
	return utils.SplitList(e.GetParameter(name))
}

func NewBedrockResponse(actionGroup, function string, results interface{}) BedrockOutput {
	resBody, _ := json.Marshal(results)
	return BedrockOutput{
		MessageVersion: "1.0",
		Response: BedrockResponseContainer{
			ActionGroup: actionGroup,
			Function:    function,
			FunctionResponse: BedrockFunctionResponse{
				ResponseBody: map[string]interface{}{
					"TEXT": map[string]string{
						"body": string(resBody),
					},
				},
			},
		},
	}
}
