package lower

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tsxlower/internal/ast"
	"tsxlower/internal/testkit"
	"tsxlower/internal/trace"
)

var cmpValues = cmp.AllowUnexported(ast.Value{})

func TestRewriteIsIdentityWithoutMarkup(t *testing.T) {
	src := `import { a } from "m";
// leading
export class C<T> extends B implements I {
  private x: number = 1;
  m(y?: string): void { for (const k of [1, , ...z]) if (k < 2) continue; }
}
const f = async <T,>(v: T): Promise<T> => await v ?? null;
label: while (true) { break label; }
`
	in := parse(t, src)
	out, stats, err := File(in, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in.Program, out.Program, cmpValues); diff != "" {
		t.Errorf("markup-free program changed (-in +out):\n%s", diff)
	}
	if stats != (Stats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestRewriteKeepsFieldlessNodes(t *testing.T) {
	for _, in := range []*ast.Opaque{
		{Type: ast.KindEmptyStatement},
		{Type: ast.KindEmptyStatement, Fields: []ast.Field{}},
	} {
		out, err := NewWalker(DefaultOptions()).Rewrite(in)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(ast.Node(in), out, cmpValues); diff != "" {
			t.Errorf("rewrite changed a field-less node (-in +out):\n%s", diff)
		}
		if out == ast.Node(in) {
			t.Error("node was reused")
		}
	}
}

func TestRewriteBuildsNewTree(t *testing.T) {
	in := parse(t, "const el = <div className={cls}>{/* note */}<span/></div>;\n// tail\n")
	before := ast.Children(in.Program)
	out, stats, err := File(in, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if err := testkit.CheckNoMarkup(out.Program); err != nil {
		t.Fatal(err)
	}
	if testkit.CheckNoMarkup(in.Program) == nil {
		t.Fatal("input lost its markup")
	}
	if out.Program == in.Program {
		t.Fatal("program was reused")
	}
	if diff := cmp.Diff(before, ast.Children(in.Program), cmpValues); diff != "" {
		t.Errorf("input program changed (-before +after):\n%s", diff)
	}
	if stats.Elements != 2 || stats.Fragments != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestFileSharesComments(t *testing.T) {
	in := parse(t, "#!/usr/bin/env node\n/** doc */\nconst a = <a>{/* inner */}</a>; // trailing\n")
	out, _, err := File(in, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if err := testkit.CheckCommentsShared(in, out); err != nil {
		t.Fatal(err)
	}
	if len(out.Comments) != 3 {
		t.Errorf("comments = %d, want 3", len(out.Comments))
	}
	if out.Hashbang != in.Hashbang || out.Path != in.Path {
		t.Errorf("file header not carried: %q %q", out.Hashbang, out.Path)
	}
}

func TestAttachKeepsSlice(t *testing.T) {
	comments := []ast.Comment{{Kind: ast.CommentLine, Text: " a"}, {Kind: ast.CommentBlock, Text: " b "}}
	root := ast.NewOpaque(ast.KindProgram, spanAt(0, 0), ast.F("body", ast.List()))
	f := Attach(root, comments)
	if f.Program != root || len(f.Comments) != 2 || &f.Comments[0] != &comments[0] {
		t.Fatalf("Attach did not keep root and comments")
	}
}

func TestRewriteDeepNesting(t *testing.T) {
	const depth = 200000
	var n ast.Node = ast.NewIdentifier("x", spanAt(0, 1))
	for i := 0; i < depth; i++ {
		n = ast.NewOpaque(ast.KindUnaryExpression, spanAt(0, 1),
			ast.F("operator", ast.Str("!")),
			ast.F("argument", ast.NodeValue(n)),
			ast.F("prefix", ast.Bool(true)),
		)
	}
	out, err := NewWalker(DefaultOptions()).Rewrite(n)
	if err != nil {
		t.Fatal(err)
	}
	var got int
	for cur := out; ast.Is(cur, ast.KindUnaryExpression); cur = cur.(*ast.Opaque).Node("argument") {
		got++
	}
	if got != depth {
		t.Fatalf("depth = %d, want %d", got, depth)
	}
}

func TestRewriteKeepsAbsentListItems(t *testing.T) {
	arr := ast.NewOpaque(ast.KindArrayExpression, spanAt(0, 5),
		ast.F("elements", ast.List(ast.NodeValue(ast.NewIdentifier("a", spanAt(1, 2))), ast.Absent(),
			ast.List(ast.Str("nested"), ast.Bool(true)))),
	)
	out, err := NewWalker(DefaultOptions()).Rewrite(arr)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ast.Node(arr), out, cmpValues); diff != "" {
		t.Errorf("(-in +out):\n%s", diff)
	}
	if &out.(*ast.Opaque).List("elements")[0] == &arr.List("elements")[0] {
		t.Error("list backing array was shared")
	}
}

func TestFileContextTracesMarkup(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	in := parse(t, "const a = <div><b /></div>;\nconst f = <>x</>;\n")
	if _, _, err := FileContext(ctx, in, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	var spans, points []string
	for _, ev := range ring.Snapshot() {
		switch ev.Kind {
		case trace.KindSpanBegin:
			spans = append(spans, ev.Name)
		case trace.KindPoint:
			points = append(points, ev.Name)
		}
	}
	if diff := cmp.Diff([]string{"lower"}, spans); diff != "" {
		t.Errorf("spans (-want +got):\n%s", diff)
	}
	want := []string{ast.KindElement, ast.KindElement, ast.KindFragment}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("points (-want +got):\n%s", diff)
	}
}

func TestFileContextQuietBelowDebug(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, _, err := FileContext(ctx, parse(t, "x = <a />;\n"), DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindPoint {
			t.Fatalf("unexpected point %q at detail level", ev.Name)
		}
	}
}
