package fuzztests

import (
	"io/fs"
	"os"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
)

// maxInput bounds both seeds and generated inputs.
const maxInput = 64 << 10

// builtinSeeds cover each markup form once.
var builtinSeeds = []string{
	"",
	"x = <a />;\n",
	"const el = <div id=\"x\" {...rest}>Hi {name}</div>;\n",
	"const f = <><A /></>;\n",
	"x = <Foo.Bar.Baz a={1} b />;\n",
	"x = <this.Item />;\n",
	"x = <div>\n  first line\n  second &amp; &#x41; &nbsp;line\n</div>;\n",
	"x = <ul>{items.map(i => <li key={i}>{i}</li>)}</ul>;\n",
	"x = <a>{/* only a comment */}</a>;\n",
	"x = <a>{...children}</a>;\n",
	"x = <a b=<c /> />;\n",
	"x = <data-grid aria-label=\"t\" />;\n",
	"function f<T>(x: T): T { return <T>x; }\n",
	"#!/usr/bin/env node\n// lead\nexport default () => <main />;\n",
}

// addCorpusSeeds registers the built-in seeds and every .tsx file under
// testdata.
func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	corpus := os.DirFS("testdata")
	paths, err := doublestar.Glob(corpus, "**/*.tsx", doublestar.WithFilesOnly())
	if err != nil {
		f.Fatalf("seed corpus: %v", err)
	}
	for _, p := range paths {
		src, err := fs.ReadFile(corpus, p)
		if err != nil {
			f.Fatalf("seed %s: %v", p, err)
		}
		f.Add(clip(src))
	}
}

// clip returns a private copy of b cut to maxInput bytes.
func clip(b []byte) []byte {
	return append([]byte(nil), b[:min(len(b), maxInput)]...)
}
