package handlers

import (
	"fmt"
	"strings"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/models"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/stores"
)

// categoryDescriptions maps each category to its display line.
var categoryDescriptions = map[models.RecordCategory]string{
	models.CategoryCommunications: "📞 通訊方式（電話、email、社群帳號等）",
	models.CategoryNicknames:      "🏷️ 暱稱或稱呼",
	models.CategoryMemories:       "💭 共同回憶或重要事件",
	models.CategoryPreferences:    "❤️ 喜好與偏好",
	models.CategoryPlan:           "📅 計劃或約定",
	models.CategoryOther:          "📌 其他資訊",
}

// RecordHandler executes record tool calls for one user. Record access is
// always scoped through the contact ownership chain.
type RecordHandler struct {
	store    stores.Store
	user     *models.User
	handlers map[string]handlerFunc
}

func NewRecordHandler(store stores.Store, user *models.User) *RecordHandler {
	h := &RecordHandler{store: store, user: user}
	h.handlers = map[string]handlerFunc{
		"get_records":            h.getRecords,
		"get_records_by_contact": h.getRecordsByContact,
		"get_record":             h.getRecord,
		"create_record":          h.createRecord,
		"update_record":          h.updateRecord,
		"delete_record":          h.deleteRecord,
		"get_record_categories":  h.getRecordCategories,
	}
	return h
}

// Resolve returns the handler registered under name.
func (h *RecordHandler) Resolve(name string) (handlerFunc, bool) {
	fn, ok := h.handlers[name]
	return fn, ok
}

func invalidCategoryMessage(category string) string {
	return fmt.Sprintf("無效的分類: %s。有效的分類: %s", category, strings.Join(models.CategoryNames(), ", "))
}

func (h *RecordHandler) getRecords(args map[string]any) (string, error) {
	filter := stores.RecordFilter{
		Search: stringArg(args, "search", ""),
		Limit:  intArg(args, "limit", 10),
	}
	if contactID, ok := idArg(args, "contact_id"); ok {
		filter.ContactID = &contactID
	}
	if categoryName, ok := optionalStringArg(args, "category"); ok && categoryName != "" {
		category, valid := models.ParseCategory(categoryName)
		if !valid {
			return invalidCategoryMessage(categoryName), nil
		}
		filter.Category = &category
	}

	records, total, err := h.store.ListRecords(h.user.ID, filter)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "找不到符合條件的記錄", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "找到 %d 筆記錄：\n", total)
	for _, record := range records {
		fmt.Fprintf(&b, "• [%d] [%s] %s", record.ID, record.Category, record.Content)
		if record.Contact != nil {
			fmt.Fprintf(&b, "（聯絡人：%s）", record.Contact.Name)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (h *RecordHandler) getRecordsByContact(args map[string]any) (string, error) {
	contactID, ok := idArg(args, "contact_id")
	if !ok {
		return "請提供有效的聯絡人 ID", nil
	}

	contact, err := h.store.GetContact(h.user.ID, contactID)
	if err != nil {
		return "", err
	}
	if contact == nil {
		return fmt.Sprintf("找不到 ID 為 %d 的聯絡人", contactID), nil
	}

	filter := stores.RecordFilter{
		ContactID: &contactID,
		Limit:     intArg(args, "limit", 20),
	}
	records, _, err := h.store.ListRecords(h.user.ID, filter)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return fmt.Sprintf("「%s」目前沒有任何記錄", contact.Name), nil
	}

	grouped := make(map[models.RecordCategory][]models.Record)
	for _, record := range records {
		grouped[record.Category] = append(grouped[record.Category], record)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "「%s」的記錄（共 %d 筆）：\n", contact.Name, len(records))
	for _, category := range models.AllCategories() {
		items := grouped[category]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "📂 %s：\n", category)
		for _, record := range items {
			fmt.Fprintf(&b, "  • [%d] %s\n", record.ID, record.Content)
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (h *RecordHandler) getRecord(args map[string]any) (string, error) {
	recordID, ok := idArg(args, "record_id")
	if !ok {
		return "請提供有效的記錄 ID", nil
	}

	record, err := h.store.GetRecord(h.user.ID, recordID)
	if err != nil {
		return "", err
	}
	if record == nil {
		return fmt.Sprintf("找不到 ID 為 %d 的記錄", recordID), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "記錄資訊：\n• ID: %d\n• 分類: %s\n• 內容: %s\n", record.ID, record.Category, record.Content)
	if record.Contact != nil {
		fmt.Fprintf(&b, "• 聯絡人: %s（ID: %d）\n", record.Contact.Name, record.ContactID)
	}
	fmt.Fprintf(&b, "• 創建時間: %s", record.CreatedAt.Format("2006-01-02 15:04"))
	return b.String(), nil
}

func (h *RecordHandler) createRecord(args map[string]any) (string, error) {
	contactID, ok := idArg(args, "contact_id")
	if !ok {
		return "請提供有效的聯絡人 ID", nil
	}

	contact, err := h.store.GetContact(h.user.ID, contactID)
	if err != nil {
		return "", err
	}
	if contact == nil {
		return fmt.Sprintf("找不到 ID 為 %d 的聯絡人", contactID), nil
	}

	categoryName := stringArg(args, "category", "")
	category, valid := models.ParseCategory(categoryName)
	if !valid {
		return invalidCategoryMessage(categoryName), nil
	}

	content := stringArg(args, "content", "")
	if content == "" {
		return "記錄內容不能為空", nil
	}

	record := &models.Record{Category: category, Content: content, ContactID: contact.ID}
	if err := h.store.CreateRecord(record); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ 已成功為「%s」創建記錄（ID: %d，分類：%s）", contact.Name, record.ID, record.Category), nil
}

func (h *RecordHandler) updateRecord(args map[string]any) (string, error) {
	recordID, ok := idArg(args, "record_id")
	if !ok {
		return "請提供有效的記錄 ID", nil
	}

	record, err := h.store.GetRecord(h.user.ID, recordID)
	if err != nil {
		return "", err
	}
	if record == nil {
		return fmt.Sprintf("找不到 ID 為 %d 的記錄", recordID), nil
	}

	updated := false
	if categoryName, ok := optionalStringArg(args, "category"); ok && categoryName != "" {
		category, valid := models.ParseCategory(categoryName)
		if !valid {
			return invalidCategoryMessage(categoryName), nil
		}
		record.Category = category
		updated = true
	}
	if content, ok := optionalStringArg(args, "content"); ok && content != "" {
		record.Content = content
		updated = true
	}
	if !updated {
		return "沒有需要更新的欄位", nil
	}

	if err := h.store.SaveRecord(record); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ 已成功更新記錄（ID: %d，分類：%s）", record.ID, record.Category), nil
}

func (h *RecordHandler) deleteRecord(args map[string]any) (string, error) {
	recordID, ok := idArg(args, "record_id")
	if !ok {
		return "請提供有效的記錄 ID", nil
	}

	record, err := h.store.GetRecord(h.user.ID, recordID)
	if err != nil {
		return "", err
	}
	if record == nil {
		return fmt.Sprintf("找不到 ID 為 %d 的記錄", recordID), nil
	}

	if err := h.store.DeleteRecord(record); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ 已成功刪除記錄（ID: %d）", recordID), nil
}

func (h *RecordHandler) getRecordCategories(args map[string]any) (string, error) {
	var b strings.Builder
	b.WriteString("📋 可用的記錄分類：\n")
	for _, category := range models.AllCategories() {
		fmt.Fprintf(&b, "• %s - %s\n", category, categoryDescriptions[category])
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
