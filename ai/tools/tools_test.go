package tools

import "testing"

func declarationNames(t *testing.T) map[string]bool {
	t.Helper()
	names := make(map[string]bool)
	for _, tool := range AllTools() {
		for _, decl := range tool.FunctionDeclarations {
			if decl.Name == "" {
				t.Fatal("declaration with empty name")
			}
			if names[decl.Name] {
				t.Fatalf("duplicate declaration %q", decl.Name)
			}
			names[decl.Name] = true
		}
	}
	return names
}

func TestAllToolsCatalog(t *testing.T) {
	names := declarationNames(t)
	want := []string{
		"get_contacts", "get_contact", "create_contact", "update_contact", "delete_contact",
		"get_records", "get_records_by_contact", "get_record",
		"create_record", "update_record", "delete_record", "get_record_categories",
	}
	if len(names) != len(want) {
		t.Fatalf("catalog has %d declarations, want %d", len(names), len(want))
	}
	for _, name := range want {
		if !names[name] {
			t.Fatalf("missing declaration %q", name)
		}
	}
}

func TestRequiredParameters(t *testing.T) {
	required := map[string][]string{
		"create_contact": {"name"},
		"update_contact": {"contact_id"},
		"delete_contact": {"contact_id"},
		"create_record":  {"contact_id", "category", "content"},
		"update_record":  {"record_id"},
		"delete_record":  {"record_id"},
	}
	for _, tool := range AllTools() {
		for _, decl := range tool.FunctionDeclarations {
			want, ok := required[decl.Name]
			if !ok {
				continue
			}
			if len(decl.Parameters.Required) != len(want) {
				t.Fatalf("%s required = %v, want %v", decl.Name, decl.Parameters.Required, want)
			}
			for i, name := range want {
				if decl.Parameters.Required[i] != name {
					t.Fatalf("%s required = %v, want %v", decl.Name, decl.Parameters.Required, want)
				}
			}
		}
	}
}
