// Package tools declares the function-calling catalog exposed to the model.
// Declarations are static; argument validation happens in the handlers.
package tools

import "google.golang.org/genai"

// ContactTools returns the contact management declarations.
func ContactTools() []*genai.Tool {
	return []*genai.Tool{
		getContactsTool(),
		getContactTool(),
		createContactTool(),
		updateContactTool(),
		deleteContactTool(),
	}
}

func getContactsTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "get_contacts",
			Description: "獲取用戶的聯絡人列表，可以用關鍵字搜尋聯絡人名稱或描述",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"search": {
						Type:        genai.TypeString,
						Description: "搜尋關鍵字，用於過濾聯絡人名稱或描述",
					},
					"limit": {
						Type:        genai.TypeInteger,
						Description: "回傳的聯絡人數量上限，預設為 10",
					},
				},
			},
		}},
	}
}

func getContactTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "get_contact",
			Description: "根據聯絡人 ID 獲取特定聯絡人的詳細資訊",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"contact_id": {
						Type:        genai.TypeInteger,
						Description: "聯絡人的 ID",
					},
				},
				Required: []string{"contact_id"},
			},
		}},
	}
}

func createContactTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "create_contact",
			Description: "創建一個新的聯絡人",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "聯絡人的名稱",
					},
					"description": {
						Type:        genai.TypeString,
						Description: "聯絡人的描述（可選）",
					},
				},
				Required: []string{"name"},
			},
		}},
	}
}

func updateContactTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "update_contact",
			Description: "更新現有聯絡人的名稱或描述",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"contact_id": {
						Type:        genai.TypeInteger,
						Description: "要更新的聯絡人 ID",
					},
					"name": {
						Type:        genai.TypeString,
						Description: "新的聯絡人名稱（可選）",
					},
					"description": {
						Type:        genai.TypeString,
						Description: "新的聯絡人描述（可選）",
					},
				},
				Required: []string{"contact_id"},
			},
		}},
	}
}

func deleteContactTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "delete_contact",
			Description: "刪除指定的聯絡人及其所有記錄",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"contact_id": {
						Type:        genai.TypeInteger,
						Description: "要刪除的聯絡人 ID",
					},
				},
				Required: []string{"contact_id"},
			},
		}},
	}
}
