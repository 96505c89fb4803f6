package handlers

import (
	"fmt"
	"strings"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/models"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/stores"
)

// ContactHandler executes contact tool calls for one user.
type ContactHandler struct {
	store    stores.Store
	user     *models.User
	handlers map[string]handlerFunc
}

func NewContactHandler(store stores.Store, user *models.User) *ContactHandler {
	h := &ContactHandler{store: store, user: user}
	h.handlers = map[string]handlerFunc{
		"get_contacts":   h.getContacts,
		"get_contact":    h.getContact,
		"create_contact": h.createContact,
		"update_contact": h.updateContact,
		"delete_contact": h.deleteContact,
	}
	return h
}

// Resolve returns the handler registered under name.
func (h *ContactHandler) Resolve(name string) (handlerFunc, bool) {
	fn, ok := h.handlers[name]
	return fn, ok
}

func (h *ContactHandler) getContacts(args map[string]any) (string, error) {
	search := stringArg(args, "search", "")
	limit := intArg(args, "limit", 10)

	contacts, total, err := h.store.ListContacts(h.user.ID, search, 0, limit)
	if err != nil {
		return "", err
	}
	if len(contacts) == 0 {
		if search != "" {
			return fmt.Sprintf("找不到符合「%s」的聯絡人", search), nil
		}
		return "目前沒有任何聯絡人", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "找到 %d 位聯絡人：\n", total)
	for _, contact := range contacts {
		fmt.Fprintf(&b, "• [%d] %s", contact.ID, contact.Name)
		if contact.Description != nil && *contact.Description != "" {
			fmt.Fprintf(&b, " - %s", *contact.Description)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (h *ContactHandler) getContact(args map[string]any) (string, error) {
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

	var b strings.Builder
	fmt.Fprintf(&b, "聯絡人資訊：\n• ID: %d\n• 名稱: %s\n", contact.ID, contact.Name)
	if contact.Description != nil && *contact.Description != "" {
		fmt.Fprintf(&b, "• 描述: %s\n", *contact.Description)
	}
	fmt.Fprintf(&b, "• 記錄數量: %d\n", len(contact.Records))
	fmt.Fprintf(&b, "• 創建時間: %s", contact.CreatedAt.Format("2006-01-02 15:04"))
	return b.String(), nil
}

func (h *ContactHandler) createContact(args map[string]any) (string, error) {
	name := stringArg(args, "name", "")
	if name == "" {
		return "聯絡人名稱不能為空", nil
	}

	contact := &models.Contact{Name: name, UserID: h.user.ID}
	if description, ok := optionalStringArg(args, "description"); ok && description != "" {
		contact.Description = &description
	}

	if err := h.store.CreateContact(contact); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ 已成功創建聯絡人「%s」（ID: %d）", contact.Name, contact.ID), nil
}

func (h *ContactHandler) updateContact(args map[string]any) (string, error) {
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

	updated := false
	if name, ok := optionalStringArg(args, "name"); ok && name != "" {
		contact.Name = name
		updated = true
	}
	if description, ok := optionalStringArg(args, "description"); ok {
		contact.Description = &description
		updated = true
	}
	if !updated {
		return "沒有需要更新的欄位", nil
	}

	if err := h.store.SaveContact(contact); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ 已成功更新聯絡人「%s」（ID: %d）", contact.Name, contact.ID), nil
}

func (h *ContactHandler) deleteContact(args map[string]any) (string, error) {
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

	name := contact.Name
	if err := h.store.DeleteContact(contact); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ 已成功刪除聯絡人「%s」及其所有記錄", name), nil
}
