package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindComponent, "Component"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{"nil node", nil, false},
		{"text node", &VNode{Kind: KindText, Text: "hello"}, false},
		{"element without handlers", &VNode{Kind: KindElement, Tag: "li", Props: Props{"class": "x"}}, false},
		{"element with onclick", &VNode{Kind: KindElement, Tag: "a", Props: Props{"onclick": func() {}}}, true},
		{"element with nil props", &VNode{Kind: KindElement, Tag: "ul"}, false},
		{"component node", &VNode{Kind: KindComponent}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeHandler(t *testing.T) {
	called := false
	node := A(OnClick(func() { called = true }))

	for _, name := range []string{"click", "onclick"} {
		fn, ok := node.Handler(name).(func())
		if !ok {
			t.Fatalf("Handler(%q) returned %T, want func()", name, node.Handler(name))
		}
		fn()
	}
	if !called {
		t.Error("handler was not invoked")
	}

	if h := node.Handler("keydown"); h != nil {
		t.Errorf("Handler(keydown) = %v, want nil", h)
	}
	var nilNode *VNode
	if h := nilNode.Handler("click"); h != nil {
		t.Errorf("nil node Handler = %v, want nil", h)
	}
}

func TestFuncComponent(t *testing.T) {
	comp := Func(func() *VNode { return P(Text("hi")) })
	node := comp.Render()
	if node.Tag != "p" {
		t.Errorf("Render().Tag = %q, want p", node.Tag)
	}
}
