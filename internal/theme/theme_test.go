package theme

import "testing"

func TestDefaultStylesPopulated(t *testing.T) {
	s := Default()
	for name, style := range map[string]interface{}{
		"Header":       s.Header,
		"SelectedItem": s.SelectedItem,
		"Error":        s.Error,
		"FieldLabel":   s.FieldLabel,
		"Link":         s.Link,
	} {
		if style == nil {
			t.Fatalf("expected %s style to be set", name)
		}
	}
}

func TestRenderWithNilStyle(t *testing.T) {
	if got := Render(nil, "plain"); got != "plain" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}
