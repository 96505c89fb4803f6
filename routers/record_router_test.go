package routers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/schemas"
)

func createContactViaAPI(t *testing.T, api *testAPI, token, name string) schemas.ContactResponse {
	t.Helper()
	w := api.request(t, http.MethodPost, "/contacts", fmt.Sprintf(`{"name":"%s"}`, name), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create contact: %d %s", w.Code, w.Body.String())
	}
	var contact schemas.ContactResponse
	if err := json.Unmarshal(w.Body.Bytes(), &contact); err != nil {
		t.Fatal(err)
	}
	return contact
}

func TestRecordCRUD(t *testing.T) {
	api := newTestAPI(t, &fakeGen{})
	token := api.signup(t, "alice")
	contact := createContactViaAPI(t, api, token, "小明")

	body := fmt.Sprintf(`{"contact_id":%d,"category":"Memories","content":"一起去爬山"}`, contact.ID)
	w := api.request(t, http.MethodPost, "/records", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var record schemas.RecordResponse
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatal(err)
	}

	w = api.request(t, http.MethodGet, fmt.Sprintf("/records/%d", record.ID), "", token)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "一起去爬山") {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}

	w = api.request(t, http.MethodPut, fmt.Sprintf("/records/%d", record.ID), `{"category":"Plan"}`, token)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Plan") {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}

	w = api.request(t, http.MethodGet, fmt.Sprintf("/records/by-contact/%d", contact.ID), "", token)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "一起去爬山") {
		t.Fatalf("list by contact: %d %s", w.Code, w.Body.String())
	}

	w = api.request(t, http.MethodDelete, fmt.Sprintf("/records/%d", record.ID), "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	w = api.request(t, http.MethodGet, fmt.Sprintf("/records/%d", record.ID), "", token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("after delete: %d %s", w.Code, w.Body.String())
	}
}

func TestRecordInvalidCategory(t *testing.T) {
	api := newTestAPI(t, &fakeGen{})
	token := api.signup(t, "alice")
	contact := createContactViaAPI(t, api, token, "小明")

	body := fmt.Sprintf(`{"contact_id":%d,"category":"Gossip","content":"嗨"}`, contact.ID)
	w := api.request(t, http.MethodPost, "/records", body, token)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "無效的分類") {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}

func TestRecordOwnershipIsolation(t *testing.T) {
	api := newTestAPI(t, &fakeGen{})
	aliceToken := api.signup(t, "alice")
	bobToken := api.signup(t, "bob")

	contact := createContactViaAPI(t, api, aliceToken, "小明")
	body := fmt.Sprintf(`{"contact_id":%d,"category":"Other","content":"祕密"}`, contact.ID)
	w := api.request(t, http.MethodPost, "/records", body, aliceToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var record schemas.RecordResponse
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatal(err)
	}

	// bob cannot see alice's contact or record, both read as missing
	w = api.request(t, http.MethodGet, fmt.Sprintf("/contacts/%d", contact.ID), "", bobToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign contact: %d %s", w.Code, w.Body.String())
	}
	w = api.request(t, http.MethodGet, fmt.Sprintf("/records/%d", record.ID), "", bobToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign record: %d %s", w.Code, w.Body.String())
	}
	// nor create records under alice's contact
	w = api.request(t, http.MethodPost, "/records", body, bobToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign create: %d %s", w.Code, w.Body.String())
	}
}

func TestRecordCategoriesEndpoint(t *testing.T) {
	api := newTestAPI(t, &fakeGen{})
	token := api.signup(t, "alice")

	w := api.request(t, http.MethodGet, "/records/categories/list", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	for _, name := range []string{"Communications", "Nicknames", "Memories", "Preferences", "Plan", "Other"} {
		if !strings.Contains(w.Body.String(), name) {
			t.Fatalf("body %s missing %s", w.Body.String(), name)
		}
	}
}

func TestContactListPagination(t *testing.T) {
	api := newTestAPI(t, &fakeGen{})
	token := api.signup(t, "alice")
	for i := 0; i < 5; i++ {
		createContactViaAPI(t, api, token, fmt.Sprintf("朋友%d", i))
	}

	// the frontend paginates with skip/limit
	w := api.request(t, http.MethodGet, "/contacts?skip=2&limit=2", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var list schemas.ContactListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 5 || len(list.Contacts) != 2 {
		t.Fatalf("skip/limit ignored: %+v", list)
	}
	if list.Contacts[0].Name != "朋友2" {
		t.Fatalf("skip not applied: first = %q", list.Contacts[0].Name)
	}
	if list.Page != 2 || list.Size != 2 {
		t.Fatalf("envelope = page %d size %d, want page 2 size 2", list.Page, list.Size)
	}

	// defaults return everything on page 1
	w = api.request(t, http.MethodGet, "/contacts", "", token)
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 5 || len(list.Contacts) != 5 || list.Page != 1 || list.Size != 5 {
		t.Fatalf("defaults = %+v", list)
	}

	w = api.request(t, http.MethodGet, "/contacts?search=朋友1", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 {
		t.Fatalf("search total = %d, want 1", list.Total)
	}
}

func TestRecordsByContactFilters(t *testing.T) {
	api := newTestAPI(t, &fakeGen{})
	token := api.signup(t, "alice")
	contact := createContactViaAPI(t, api, token, "小明")

	for _, rec := range []struct{ category, content string }{
		{"Plan", "週五聚餐"},
		{"Memories", "一起去爬山"},
		{"Memories", "一起看電影"},
	} {
		body := fmt.Sprintf(`{"contact_id":%d,"category":"%s","content":"%s"}`, contact.ID, rec.category, rec.content)
		if w := api.request(t, http.MethodPost, "/records", body, token); w.Code != http.StatusCreated {
			t.Fatalf("create: %d %s", w.Code, w.Body.String())
		}
	}

	path := fmt.Sprintf("/records/by-contact/%d?category=Memories", contact.ID)
	w := api.request(t, http.MethodGet, path, "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
	var list schemas.RecordListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 2 {
		t.Fatalf("category filter total = %d, want 2", list.Total)
	}

	path = fmt.Sprintf("/records/by-contact/%d?search=爬山", contact.ID)
	w = api.request(t, http.MethodGet, path, "", token)
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 || list.Records[0].Content != "一起去爬山" {
		t.Fatalf("search filter = %+v", list)
	}

	path = fmt.Sprintf("/records/by-contact/%d?category=Gossip", contact.ID)
	if w = api.request(t, http.MethodGet, path, "", token); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid category: %d %s", w.Code, w.Body.String())
	}
}
