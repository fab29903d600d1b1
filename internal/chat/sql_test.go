package chat

import "testing"

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare", "SELECT 1", "SELECT 1"},
		{"padded", "  SELECT 1  \n", "SELECT 1"},
		{"full fence", "```sql\nSELECT 1\n```", "SELECT 1"},
		{"leading fence only", "```sql\nSELECT 1", "SELECT 1"},
		{"trailing fence only", "SELECT 1\n```", "SELECT 1"},
		{"fence with padding", "  ```sql\n  SELECT valor FROM saidas\n```  ", "SELECT valor FROM saidas"},
		{"empty", "", ""},
		{"fence only", "```sql\n```", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSQL(tt.raw); got != tt.want {
				t.Errorf("ExtractSQL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateSQL(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		usuarioID int
		wantMsg   string
	}{
		{"valid select", "SELECT valor FROM saidas WHERE usuario_id = 7", 7, ""},
		{"valid lowercase", "select valor from entradas where usuario_id = 7", 7, ""},
		{"valid mixed case keyword", "Select SUM(valor) FROM saidas WHERE usuario_id = 7", 7, ""},
		{"empty", "", 7, msgEmptySQL},
		{"delete", "DELETE FROM saidas WHERE usuario_id = 7", 7, msgReadOnly},
		{"update", "UPDATE saidas SET valor = 0 WHERE usuario_id = 7", 7, msgReadOnly},
		{"drop", "DROP TABLE saidas", 7, msgReadOnly},
		{"missing scope", "SELECT valor FROM saidas", 7, msgUnsafe},
		{"wrong user", "SELECT valor FROM saidas WHERE usuario_id = 8", 7, msgUnsafe},
		{"prefix id not enough", "SELECT valor FROM saidas WHERE usuario_id = 77", 7, ""},
		{"no space around equals", "SELECT valor FROM saidas WHERE usuario_id=7", 7, msgUnsafe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refusal := ValidateSQL(tt.sql, tt.usuarioID)
			if tt.wantMsg == "" {
				if refusal != nil {
					t.Fatalf("ValidateSQL(%q) = %q, want pass", tt.sql, refusal.Message)
				}
				return
			}
			if refusal == nil {
				t.Fatalf("ValidateSQL(%q) passed, want %q", tt.sql, tt.wantMsg)
			}
			if refusal.Message != tt.wantMsg {
				t.Errorf("ValidateSQL(%q) = %q, want %q", tt.sql, refusal.Message, tt.wantMsg)
			}
		})
	}
}
