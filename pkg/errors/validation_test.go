package errors

import (
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "count", false},
		{"underscore", "_count", false},
		{"dollar", "Outer$Inner", false},
		{"unicode", "größe", false},
		{"digits", "field2", false},

		{"empty", "", true},
		{"leading digit", "2field", true},
		{"dot", "a.b", true},
		{"space", "a b", true},
		{"too long", strings256(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateQualifiedName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single segment", "Foo", false},
		{"package", "java.util", false},
		{"type", "java.util.Map", false},

		{"empty", "", true},
		{"trailing dot", "java.util.", true},
		{"double dot", "java..util", true},
		{"slash", "java/util", true},
		{"generic", "java.util.List<String>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQualifiedName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQualifiedName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid file", "Foo.puml", false},
		{"valid nested", "com/example/Foo.puml", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "com/../../etc", true},
		{"backslash", "com\\example", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"http://localhost:8080", false},
		{"https://www.plantuml.com/plantuml", false},
		{"", true},
		{"ftp://example.com", true},
		{"localhost:8080", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func strings256() string {
	b := make([]byte, 257)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
