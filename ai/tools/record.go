package tools

import "google.golang.org/genai"

// RecordTools returns the record management declarations.
func RecordTools() []*genai.Tool {
	return []*genai.Tool{
		getRecordsTool(),
		getRecordsByContactTool(),
		getRecordTool(),
		createRecordTool(),
		updateRecordTool(),
		deleteRecordTool(),
		getRecordCategoriesTool(),
	}
}

// AllTools returns every declaration the assistant can call, contact tools
// first then record tools.
func AllTools() []*genai.Tool {
	return append(ContactTools(), RecordTools()...)
}

func getRecordsTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "get_records",
			Description: "查詢記錄，可以按聯絡人、分類或關鍵字過濾",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"contact_id": {
						Type:        genai.TypeInteger,
						Description: "聯絡人 ID，只查詢該聯絡人的記錄（可選）",
					},
					"category": {
						Type:        genai.TypeString,
						Description: "記錄分類：Communications、Nicknames、Memories、Preferences、Plan、Other（可選）",
					},
					"search": {
						Type:        genai.TypeString,
						Description: "搜尋記錄內容的關鍵字（可選）",
					},
					"limit": {
						Type:        genai.TypeInteger,
						Description: "回傳的記錄數量上限，預設為 10",
					},
				},
			},
		}},
	}
}

func getRecordsByContactTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "get_records_by_contact",
			Description: "獲取特定聯絡人的所有記錄，按分類分組顯示",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"contact_id": {
						Type:        genai.TypeInteger,
						Description: "聯絡人的 ID",
					},
					"limit": {
						Type:        genai.TypeInteger,
						Description: "回傳的記錄數量上限，預設為 20",
					},
				},
				Required: []string{"contact_id"},
			},
		}},
	}
}

func getRecordTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "get_record",
			Description: "根據記錄 ID 獲取特定記錄的詳細資訊",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"record_id": {
						Type:        genai.TypeInteger,
						Description: "記錄的 ID",
					},
				},
				Required: []string{"record_id"},
			},
		}},
	}
}

func createRecordTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "create_record",
			Description: "為聯絡人創建一筆新記錄",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"contact_id": {
						Type:        genai.TypeInteger,
						Description: "記錄所屬的聯絡人 ID",
					},
					"category": {
						Type:        genai.TypeString,
						Description: "記錄分類：Communications、Nicknames、Memories、Preferences、Plan、Other",
					},
					"content": {
						Type:        genai.TypeString,
						Description: "記錄的內容",
					},
				},
				Required: []string{"contact_id", "category", "content"},
			},
		}},
	}
}

func updateRecordTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "update_record",
			Description: "更新現有記錄的分類或內容",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"record_id": {
						Type:        genai.TypeInteger,
						Description: "要更新的記錄 ID",
					},
					"category": {
						Type:        genai.TypeString,
						Description: "新的記錄分類（可選）",
					},
					"content": {
						Type:        genai.TypeString,
						Description: "新的記錄內容（可選）",
					},
				},
				Required: []string{"record_id"},
			},
		}},
	}
}

func deleteRecordTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "delete_record",
			Description: "刪除指定的記錄",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"record_id": {
						Type:        genai.TypeInteger,
						Description: "要刪除的記錄 ID",
					},
				},
				Required: []string{"record_id"},
			},
		}},
	}
}

func getRecordCategoriesTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        "get_record_categories",
			Description: "獲取所有可用的記錄分類及其說明",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
		}},
	}
}
