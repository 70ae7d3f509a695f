package yang

import (
	"testing"
	"testing/fstest"

	"github.com/coreyang/yangcore/internal/model"
)

const percentModule = `module percent {
	namespace "urn:example:percent";
	prefix pct;

	typedef percentage {
		type uint8 {
			range "0..100";
		}
	}

	feature extended;

	identity base-kind;
	identity derived-kind {
		base base-kind;
	}

	leaf level {
		type percentage;
	}

	leaf label {
		type string {
			length "1..32";
			pattern "[a-z]+";
		}
	}
}`

func TestCompileStringBuildsCompiledModule(t *testing.T) {
	ctx := NewContext(nil)
	mod, err := ctx.CompileString(percentModule, true)
	if err != nil {
		t.Fatalf("CompileString() error = %v", err)
	}
	if !mod.Implemented {
		t.Fatal("module should be marked implemented")
	}
	if got := len(mod.Compiled.Features); got != 1 {
		t.Fatalf("Features count = %d, want 1", got)
	}
	if got := len(mod.Compiled.Identities); got != 2 {
		t.Fatalf("Identities count = %d, want 2", got)
	}
	base, derived := mod.Compiled.Identities[0], mod.Compiled.Identities[1]
	if len(base.Derived) != 1 || base.Derived[0] != derived {
		t.Fatalf("base-kind.Derived = %+v, want [derived-kind]", base.Derived)
	}

	if mod.Compiled.Top == nil {
		t.Fatal("Top is nil, want two leaves")
	}
	leaves := map[string]bool{}
	for n := mod.Compiled.Top; ; {
		leaves[n.Name.String()] = true
		n = n.Next
		if n == nil {
			break
		}
	}
	if !leaves["level"] || !leaves["label"] {
		t.Fatalf("top-level leaves = %+v, want level and label", leaves)
	}
}

func TestCompileStringRejectsDoubleImplement(t *testing.T) {
	ctx := NewContext(nil)
	if _, err := ctx.CompileString(percentModule, true); err != nil {
		t.Fatalf("first CompileString() error = %v", err)
	}
	if _, err := ctx.CompileString(percentModule, true); err == nil {
		t.Fatal("second CompileString() of the same module revision, want a duplicate-module error")
	}
}

func TestCompileStringUnknownTypedefFails(t *testing.T) {
	ctx := NewContext(nil)
	src := `module bad {
		namespace "urn:example:bad";
		prefix b;
		leaf x {
			type nonexistent;
		}
	}`
	if _, err := ctx.CompileString(src, false); err == nil {
		t.Fatal("CompileString() with unknown typedef, want error")
	}
}

func TestLoadModuleResolvesImport(t *testing.T) {
	fsys := fstest.MapFS{
		"base.yang": &fstest.MapFile{Data: []byte(`module base {
			namespace "urn:example:base";
			prefix b;
			identity widget;
		}`)},
		"consumer.yang": &fstest.MapFile{Data: []byte(`module consumer {
			namespace "urn:example:consumer";
			prefix c;
			import base {
				prefix b;
			}
			identity gadget {
				base b:widget;
			}
		}`)},
	}
	ctx := NewContext(NewFSLoader(fsys))
	mod, err := ctx.LoadModule("consumer", "", true)
	if err != nil {
		t.Fatalf("LoadModule() error = %v", err)
	}
	if len(mod.Compiled.Imports) != 1 || mod.Compiled.Imports[0].Module.Name != "base" {
		t.Fatalf("Imports = %+v, want [base]", mod.Compiled.Imports)
	}
	gadget := mod.Compiled.Identities[0]
	if len(gadget.Base) != 1 || gadget.Base[0].Name.String() != "widget" {
		t.Fatalf("gadget.Base = %+v, want [widget]", gadget.Base)
	}
}

func TestCompileStringCompilesWhenAndMust(t *testing.T) {
	src := `module guarded {
		namespace "urn:example:guarded";
		prefix g;
		leaf mode {
			type string;
		}
		leaf level {
			type uint8 {
				range "0..100";
			}
			when "../mode = 'active'";
			must "count(../mode) = 1" {
				error-message "level must be non-negative";
			}
		}
	}`
	ctx := NewContext(nil)
	mod, err := ctx.CompileString(src, false)
	if err != nil {
		t.Fatalf("CompileString() error = %v", err)
	}
	var found bool
	for n := mod.Compiled.Top; n != nil; n = n.Next {
		if n.Name.String() != "level" {
			continue
		}
		found = true
		if n.When == nil || n.When.Source != "../mode = 'active'" {
			t.Fatalf("When = %+v, want ../mode = 'active'", n.When)
		}
		if len(n.Must) != 1 || n.Must[0].ErrorMessage != "level must be non-negative" {
			t.Fatalf("Must = %+v, want one constraint with the declared error-message", n.Must)
		}
	}
	if !found {
		t.Fatal("leaf \"level\" not found in compiled tree")
	}
}

func TestCompileStringBuildsNestedTree(t *testing.T) {
	src := `module iface {
		namespace "urn:example:iface";
		prefix i;

		list interface {
			key "name";
			leaf name {
				type string;
			}
			container stats {
				leaf-list counter {
					type uint32;
				}
			}
			choice admin {
				case enabled-case {
					leaf enabled {
						type boolean;
					}
				}
				case disabled-case {
					leaf reason {
						type string;
					}
				}
			}
			uses common-flags;
		}
	}`
	ctx := NewContext(nil)
	mod, err := ctx.CompileString(src, false)
	if err != nil {
		t.Fatalf("CompileString() error = %v", err)
	}

	top := mod.Compiled.Top
	if top == nil || top.Next != nil {
		t.Fatalf("Top = %+v, want exactly one top-level list node", top)
	}
	list := top
	if list.NodeType != model.List || list.Name.String() != "interface" {
		t.Fatalf("list = %+v, want NodeType=List Name=interface", list)
	}
	if list.Key.Len() != 1 || list.Key.At(0).String() != "name" {
		t.Fatalf("list.Key = %+v, want [name]", list.Key)
	}

	children := model.Siblings(list.FirstChild)
	if len(children) != 4 {
		t.Fatalf("list children = %d, want 4 (name, stats, admin, common-flags)", len(children))
	}
	byName := make(map[string]*model.Node, len(children))
	for _, c := range children {
		byName[c.Name.String()] = c
		if c.Parent != list {
			t.Fatalf("child %q.Parent != list", c.Name.String())
		}
	}

	name, ok := byName["name"]
	if !ok || name.NodeType != model.Leaf || name.Type == nil {
		t.Fatalf("name = %+v, want a compiled Leaf", name)
	}

	stats, ok := byName["stats"]
	if !ok || stats.NodeType != model.Container {
		t.Fatalf("stats = %+v, want Container", stats)
	}
	statsChildren := model.Siblings(stats.FirstChild)
	if len(statsChildren) != 1 || statsChildren[0].NodeType != model.LeafList || statsChildren[0].Type == nil {
		t.Fatalf("stats children = %+v, want one compiled LeafList", statsChildren)
	}

	admin, ok := byName["admin"]
	if !ok || admin.NodeType != model.Choice {
		t.Fatalf("admin = %+v, want Choice", admin)
	}
	cases := model.Siblings(admin.FirstChild)
	if len(cases) != 2 || cases[0].NodeType != model.Case || cases[1].NodeType != model.Case {
		t.Fatalf("admin children = %+v, want two Case nodes", cases)
	}

	usesNode, ok := byName["common-flags"]
	if !ok || usesNode.NodeType != model.Uses || usesNode.Grouping.String() != "common-flags" {
		t.Fatalf("uses node = %+v, want Uses referencing common-flags", usesNode)
	}
}

func TestCompileStringCarriesAugmentsDeviationsAndExtensions(t *testing.T) {
	src := `module ext {
		namespace "urn:example:ext";
		prefix e;

		augment "/other:root/other:thing" {
			leaf extra {
				type string;
			}
		}
		deviation "/other:root/other:thing" {
			deviate not-supported;
		}
		md:annotation "custom" {
			type string;
		}
	}`
	ctx := NewContext(nil)
	mod, err := ctx.CompileString(src, false)
	if err != nil {
		t.Fatalf("CompileString() error = %v", err)
	}
	if len(mod.Compiled.Augments) != 1 || mod.Compiled.Augments[0].TargetPath != "/other:root/other:thing" {
		t.Fatalf("Augments = %+v, want one augment targeting /other:root/other:thing", mod.Compiled.Augments)
	}
	if len(mod.Compiled.Deviations) != 1 {
		t.Fatalf("Deviations = %+v, want one deviation", mod.Compiled.Deviations)
	}
	if len(mod.Compiled.Extensions) != 1 || mod.Compiled.Extensions[0].Keyword != "md:annotation" {
		t.Fatalf("Extensions = %+v, want one md:annotation use", mod.Compiled.Extensions)
	}
}

func TestFSLoaderPicksLatestRevision(t *testing.T) {
	fsys := fstest.MapFS{
		"m@2020-01-01.yang": &fstest.MapFile{Data: []byte(`module m { namespace "urn:m"; prefix m; revision 2020-01-01; }`)},
		"m@2023-06-15.yang": &fstest.MapFile{Data: []byte(`module m { namespace "urn:m"; prefix m; revision 2023-06-15; }`)},
	}
	l := NewFSLoader(fsys)
	_, rev, err := l.Load("m", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rev != "2023-06-15" {
		t.Fatalf("resolved revision = %q, want 2023-06-15", rev)
	}
}
