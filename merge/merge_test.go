package merge

import (
	"testing"

	"github.com/minios-linux/jslok/jsfile"
)

const sourceSrc = `export default {
  greeting: "Hello",
  farewell: "Goodbye",
  menu: {
    title: "Main menu",
    help: "Help",
  },
};
`

const existingSrc = `export default {
  greeting: "Привет",
  obsolete: "Старьё",
  menu: {
    title: "Главное меню",
  },
};
`

func TestMerge(t *testing.T) {
	source := jsfile.Parse([]byte(sourceSrc))
	existing := jsfile.Parse([]byte(existingSrc))
	got := Merge(source, existing)

	if !got.ExportDefault {
		t.Error("framing should follow source")
	}

	e, _ := got.Root.Get("greeting")
	if e == nil || e.Text != "Привет" {
		t.Errorf("greeting should keep existing translation, got %+v", e)
	}
	e, _ = got.Root.Get("farewell")
	if e == nil || e.Text != "Goodbye" {
		t.Errorf("new entry should keep source text, got %+v", e)
	}
	if _, ok := got.Root.Get("obsolete"); ok {
		t.Error("entries gone from source should be dropped")
	}

	menu, _ := got.Root.Get("menu")
	title, _ := menu.Node.Get("title")
	if title == nil || title.Text != "Главное меню" {
		t.Errorf("nested existing translation lost: %+v", title)
	}
	help, _ := menu.Node.Get("help")
	if help == nil || help.Text != "Help" {
		t.Errorf("nested new entry = %+v", help)
	}
}

func TestMerge_OrderFollowsSource(t *testing.T) {
	source := jsfile.Parse([]byte(`{ a: "1", b: "2", c: "3" }`))
	existing := jsfile.Parse([]byte(`{ c: "три", a: "один" }`))
	got := Merge(source, existing)

	want := []string{"a", "b", "c"}
	for i, name := range want {
		if got.Root.Entries[i].Name != name {
			t.Errorf("entry %d = %q, want %q", i, got.Root.Entries[i].Name, name)
		}
	}
}

func TestMissing(t *testing.T) {
	source := jsfile.Parse([]byte(sourceSrc))
	existing := jsfile.Parse([]byte(existingSrc))
	got := Missing(source, existing)

	if _, ok := got.Root.Get("greeting"); ok {
		t.Error("already-translated leaves should not be pending")
	}
	e, _ := got.Root.Get("farewell")
	if e == nil || e.Text != "Goodbye" {
		t.Errorf("farewell = %+v", e)
	}
	menu, _ := got.Root.Get("menu")
	if menu == nil || menu.Node.Len() != 1 {
		t.Fatalf("menu = %+v", menu)
	}
	if help, _ := menu.Node.Get("help"); help == nil {
		t.Error("menu.help should be pending")
	}
}

func TestMissing_FullyCoveredBlockDropped(t *testing.T) {
	source := jsfile.Parse([]byte(`{ a: "x", sub: { b: "y" } }`))
	existing := jsfile.Parse([]byte(`{ sub: { b: "у" } }`))
	got := Missing(source, existing)

	if _, ok := got.Root.Get("sub"); ok {
		t.Error("block with no pending leaves should be dropped")
	}
	if got.Root.Len() != 1 {
		t.Errorf("got %d entries, want 1", got.Root.Len())
	}
}

func TestMissing_AllTranslated(t *testing.T) {
	source := jsfile.Parse([]byte(`{ a: "x" }`))
	existing := jsfile.Parse([]byte(`{ a: "х" }`))
	if got := Missing(source, existing); !got.Empty() {
		t.Errorf("nothing should be pending, got %d entries", got.Root.Len())
	}
}

func TestApply(t *testing.T) {
	base := jsfile.Parse([]byte(`{ a: "x", sub: { b: "y", c: "z" } }`))
	translated := jsfile.Parse([]byte(`{ sub: { c: "зет" } }`))
	Apply(base, translated)

	a, _ := base.Root.Get("a")
	if a.Text != "x" {
		t.Errorf("untouched leaf changed: %+v", a)
	}
	sub, _ := base.Root.Get("sub")
	c, _ := sub.Node.Get("c")
	if c.Text != "зет" {
		t.Errorf("c = %+v", c)
	}
	b, _ := sub.Node.Get("b")
	if b.Text != "y" {
		t.Errorf("b = %+v", b)
	}
}

func TestMerge_TypeMismatchFollowsSource(t *testing.T) {
	// A key that changed from leaf to block (or back) takes the source side.
	source := jsfile.Parse([]byte(`{ a: { b: "x" }, c: "y" }`))
	existing := jsfile.Parse([]byte(`{ a: "было", c: { d: "z" } }`))
	got := Merge(source, existing)

	a, _ := got.Root.Get("a")
	if a == nil || a.IsLeaf() {
		t.Errorf("a = %+v", a)
	}
	c, _ := got.Root.Get("c")
	if c == nil || !c.IsLeaf() || c.Text != "y" {
		t.Errorf("c = %+v", c)
	}
}
