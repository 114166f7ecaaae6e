// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinclang/zinc/internal/analyzer"
	"github.com/zinclang/zinc/internal/atlas"
	"github.com/zinclang/zinc/internal/parser"
)

// compile runs the full pipeline and returns the rendered Rust.
func compile(t *testing.T, src string) string {
	t.Helper()
	prog, errs := parser.Parse(src)
	require.Empty(t, errs)
	a, err := atlas.Build(prog)
	require.NoError(t, err)
	res := analyzer.NewResolver(a)
	_, err = res.Resolve()
	require.NoError(t, err)
	return New(a, res).Generate().Render()
}

func TestGenerate_ArithmeticMonomorphization(t *testing.T) {
	rust := compile(t, `
fn add(a, b) {
    return a + b
}

fn main() {
    print(add(1, 2))
    print(add(1.5, 2.5))
}
`)
	assert.Contains(t, rust, "fn add_i64_i64(a: i64, b: i64) -> i64 {")
	assert.Contains(t, rust, "fn add_f64_f64(a: f64, b: f64) -> f64 {")
	assert.Contains(t, rust, "println!(\"{}\", add_i64_i64(1, 2));")
	assert.Contains(t, rust, "println!(\"{}\", add_f64_f64(1.5, 2.5));")

	// Exactly one definition per mangled name.
	assert.Equal(t, 1, strings.Count(rust, "fn add_i64_i64("))
	assert.Equal(t, 1, strings.Count(rust, "fn add_f64_f64("))
}

func TestGenerate_ReassignmentVersusShadow(t *testing.T) {
	rust := compile(t, `
fn main() {
    x = 1
    x = 2
    x = "hi"
    x = "world"
}
`)
	// Two declarations (both mutable) and two bare reassignments.
	assert.Equal(t, 2, strings.Count(rust, "let mut x = "))
	assert.Contains(t, rust, "let mut x = 1;")
	assert.Contains(t, rust, "x = 2;")
	assert.Contains(t, rust, `let mut x = "hi";`)
	assert.Contains(t, rust, `x = "world";`)
}

func TestGenerate_ChannelElementInference(t *testing.T) {
	rust := compile(t, `
fn producer(ch) {
    ch <- 42
}

fn main() {
    c = chan()
    spawn producer(c)
    x = <- c
}
`)
	assert.Contains(t, rust, "async fn producer_channel(ch: tokio::sync::mpsc::UnboundedSender<i64>) {")
	assert.Contains(t, rust, "ch.send(42).unwrap();")
	assert.Contains(t, rust, "let (c_tx, mut c_rx) = tokio::sync::mpsc::unbounded_channel::<i64>();")
	assert.Contains(t, rust, "tokio::spawn(producer_channel(c_tx));")
	assert.Contains(t, rust, "let x = c_rx.recv().await.unwrap();")
	assert.Contains(t, rust, "#[tokio::main]")
	assert.Contains(t, rust, "async fn main() {")
	assert.Contains(t, rust, "use tokio;")
}

func TestGenerate_ChannelEndpointSplit(t *testing.T) {
	rust := compile(t, `
fn main() {
    c = chan()
    c <- 1
    x = <- c
}
`)
	// Send and receive sites use distinct derived names; the bare
	// channel name appears in neither role.
	assert.Contains(t, rust, "c_tx.send(1).unwrap();")
	assert.Contains(t, rust, "c_rx.recv().await.unwrap()")
	assert.NotContains(t, rust, "c.send(")
	assert.NotContains(t, rust, "c.recv(")
}

func TestGenerate_StructWithMutableMethod(t *testing.T) {
	rust := compile(t, `
struct Counter {
    n: i32
    fn bump() {
        self.n = self.n + 1
    }
}

fn main() {
    c = Counter { n: 0 }
    c.bump()
    c.bump()
}
`)
	assert.Contains(t, rust, "struct Counter {")
	assert.Contains(t, rust, "pub n: i32,")
	assert.Contains(t, rust, "impl Counter {")
	assert.Contains(t, rust, "fn bump(&mut self) {")
	assert.Contains(t, rust, "self.n = (self.n + 1);")
	assert.Contains(t, rust, "let mut c = Counter { n: 0 };")
	assert.Equal(t, 2, strings.Count(rust, "c.bump();"))
}

func TestGenerate_ReachabilityPruning(t *testing.T) {
	rust := compile(t, `
fn used() {
    return 7
}

fn unused_a() {
    return 1
}

fn unused_b() {
    return unused_a()
}

fn main() {
    x = used()
}
`)
	assert.Contains(t, rust, "fn used() -> i64 {")
	assert.NotContains(t, rust, "unused_a")
	assert.NotContains(t, rust, "unused_b")
	assert.Equal(t, 2, strings.Count(rust, "fn "))
}

func TestGenerate_BoundedVersusUnboundedSend(t *testing.T) {
	bounded := compile(t, `
fn main() {
    c = chan(1)
    c <- 10
}
`)
	unbounded := compile(t, `
fn main() {
    c = chan()
    c <- 10
}
`)
	assert.Contains(t, bounded, "tokio::sync::mpsc::channel::<i64>(1);")
	assert.Contains(t, bounded, "c_tx.send(10).await.unwrap();")

	assert.Contains(t, unbounded, "tokio::sync::mpsc::unbounded_channel::<i64>();")
	assert.Contains(t, unbounded, "c_tx.send(10).unwrap();")

	// The observable difference is exactly the creation and send-site
	// shape.
	boundedLines := strings.Split(bounded, "\n")
	unboundedLines := strings.Split(unbounded, "\n")
	require.Equal(t, len(boundedLines), len(unboundedLines))
	diff := 0
	for i := range boundedLines {
		if boundedLines[i] != unboundedLines[i] {
			diff++
		}
	}
	assert.Equal(t, 2, diff)
}

func TestGenerate_EmptyMain(t *testing.T) {
	rust := compile(t, `
fn main() {
}
`)
	assert.Equal(t, "fn main() {\n}\n", rust)
}

func TestGenerate_Idempotent(t *testing.T) {
	src := `
fn add(a, b) {
    return a + b
}

fn main() {
    c = chan()
    print(add(1, 2))
    x = 1
    x = 2
}
`
	first := compile(t, src)
	second := compile(t, src)
	assert.Equal(t, first, second)
}

func TestGenerate_ConstDeclarations(t *testing.T) {
	rust := compile(t, `
const max_items = 10

fn main() {
    x = max_items
}
`)
	assert.Contains(t, rust, "const MAX_ITEMS: i64 = 10;")
	assert.Contains(t, rust, "let x = MAX_ITEMS;")
}

func TestGenerate_ControlFlow(t *testing.T) {
	rust := compile(t, `
fn main() {
    total = 0
    for i in 0..=3 {
        total = total + i
    }
    while total > 0 {
        total = total - 1
    }
    if total == 0 {
        print("done")
    } else {
        print("not done")
    }
}
`)
	assert.Contains(t, rust, "for i in 0..=3 {")
	assert.Contains(t, rust, "while (total > 0) {")
	assert.Contains(t, rust, "if (total == 0) {")
	assert.Contains(t, rust, "} else {")
	assert.Contains(t, rust, "let mut total = 0;")
	assert.Contains(t, rust, "total = (total + i);")
	assert.Contains(t, rust, `println!("done");`)
}

func TestGenerate_GrowableArray(t *testing.T) {
	rust := compile(t, `
fn main() {
    b = []
    b.push(10)
    b.push(20)
    for v in b {
        print("{v}")
    }
}
`)
	assert.Contains(t, rust, "let mut b: Vec<i64> = Vec::new();")
	assert.Contains(t, rust, "b.push(10);")
	assert.Contains(t, rust, "for v in &b {")
	assert.Contains(t, rust, `println!("{}", v);`)
}

func TestGenerate_StringInterpolation(t *testing.T) {
	rust := compile(t, `
fn main() {
    name = "zinc"
    print("hello {name}")
}
`)
	assert.Contains(t, rust, `println!("hello {}", name);`)
}

func TestGenerate_StructLiteralDefaults(t *testing.T) {
	rust := compile(t, `
struct Config {
    retries: i32
    label = "default"
    verbose = false
}

fn main() {
    c = Config { retries: 3 }
}
`)
	assert.Contains(t, rust, `Config { retries: 3, label: String::from("default"), verbose: false }`)
}

func TestGenerate_StaticMethodCall(t *testing.T) {
	rust := compile(t, `
struct Counter {
    n: i32
    fn make(n) {
        return Counter { n: n }
    }
}

fn main() {
    c = Counter.make(5)
}
`)
	assert.Contains(t, rust, "fn make(n: i32) -> Self {")
	assert.Contains(t, rust, "let c = Counter::make((5) as i32);")
}
