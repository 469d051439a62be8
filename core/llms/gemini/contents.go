package gemini

import (
	"encoding/json"

	"github.com/foliovoice/folio-core/core/llms"
	"google.golang.org/genai"
)

// Attachment references a file previously uploaded through the Files API
// that should accompany the conversation.
type Attachment struct {
	URI      string
	MIMEType string
}

func toContents(turns []llms.Turn, prompt *string, attachment *Attachment) []*genai.Content {
	contents := []*genai.Content{}

	for _, turn := range turns {
		switch turn.Role {
		case llms.TurnRoleUser:
			if turn.Content != "" {
				contents = append(contents, &genai.Content{
					Role:  genai.RoleUser,
					Parts: []*genai.Part{{Text: turn.Content}},
				})
			}

		case llms.TurnRoleAssistant:
			parts := []*genai.Part{}
			if turn.Content != "" {
				parts = append(parts, &genai.Part{Text: turn.Content})
			}

			responseParts := []*genai.Part{}
			for _, call := range turn.ToolCalls {
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						ID:   call.ID,
						Name: call.Name,
						Args: toArgs(call.Arguments),
					},
				})
				if call.Response != "" {
					responseParts = append(responseParts, &genai.Part{
						FunctionResponse: &genai.FunctionResponse{
							ID:       call.ID,
							Name:     call.Name,
							Response: map[string]any{"output": call.Response},
						},
					})
				}
			}

			if len(parts) > 0 {
				contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: parts})
			}
			if len(responseParts) > 0 {
				contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: responseParts})
			}
		}
	}

	if prompt != nil {
		contents = append(contents, &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: *prompt}},
		})
	}

	if attachment != nil {
		for _, content := range contents {
			if content.Role != genai.RoleUser {
				continue
			}
			content.Parts = append([]*genai.Part{{
				FileData: &genai.FileData{
					FileURI:  attachment.URI,
					MIMEType: attachment.MIMEType,
				},
			}}, content.Parts...)
			break
		}
	}

	return contents
}

func toArgs(arguments string) map[string]any {
	args := map[string]any{}
	if arguments != "" {
		// Arguments the model produced itself, so a parse failure only means
		// we replay the call without them.
		_ = json.Unmarshal([]byte(arguments), &args)
	}
	return args
}

func toTools(tools []llms.Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	declarations := []*genai.FunctionDeclaration{}
	for _, tool := range tools {
		properties := map[string]*genai.Schema{}
		for name, parameter := range tool.Parameters {
			properties[name] = &genai.Schema{
				Type:        toSchemaType(parameter.Type),
				Description: parameter.Description,
			}
		}

		declaration := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if len(properties) > 0 {
			declaration.Parameters = &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   tool.Required,
			}
		}
		declarations = append(declarations, declaration)
	}

	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

func toSchemaType(parameterType string) genai.Type {
	switch parameterType {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	}
	return genai.TypeString
}
