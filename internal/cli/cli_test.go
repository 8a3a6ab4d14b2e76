package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vpctree/pkg/errors"
)

const testSnapshot = "../../pkg/source/snapshot/testdata/account"

// execute runs the root command with args in an isolated environment and
// returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envSnapshot, "")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootListVPCs(t *testing.T) {
	out, err := execute(t, "-s", testSnapshot, "-l")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	want := "VPCs:\n" +
		"├──vpc-0a1b2c3d : main : 10.0.0.0/16\n" +
		"└──vpc-0e0f0a0b : 172.31.0.0/16 : default\n"
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}
}

func TestRootTree(t *testing.T) {
	out, err := execute(t, "-s", testSnapshot, "vpc-0a1b2c3d")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if lines[0] != "vpc-0a1b2c3d : main : 10.0.0.0/16" {
		t.Errorf("first line = %q", lines[0])
	}
	for _, want := range []string{
		"├──Subnets:",
		"│  ├──sn-01 : subnet-01 : eu-west-2a : 10.0.1.0/24",
		"├──Load Balancers:",
		"└──Auto Scaling Groups:",
	} {
		if !containsLine(lines, want) {
			t.Errorf("output missing line %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "sn-99") {
		t.Error("output contains a subnet of another VPC")
	}
}

func TestTreeCommandMatchesRoot(t *testing.T) {
	viaRoot, err := execute(t, "-s", testSnapshot, "vpc-0a1b2c3d")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	viaTree, err := execute(t, "tree", "-s", testSnapshot, "--no-cache", "vpc-0a1b2c3d")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if viaRoot != viaTree {
		t.Errorf("tree output differs from root output")
	}
}

func TestTreeJSON(t *testing.T) {
	out, err := execute(t, "tree", "-s", testSnapshot, "-f", "json", "vpc-0a1b2c3d")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	var report treeReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if report.VpcID != "vpc-0a1b2c3d" || len(report.Lines) == 0 || report.Cached {
		t.Errorf("report = %+v", report)
	}
}

func TestTreeOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vpc.txt")
	out, err := execute(t, "tree", "-s", testSnapshot, "-o", path, "vpc-0a1b2c3d")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	for _, want := range []string{"Rendered vpc-0a1b2c3d", "→ " + path, "fresh"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "vpc-0a1b2c3d : main : 10.0.0.0/16\n├──Subnets:\n") {
		t.Errorf("file content =\n%s", data)
	}
	if strings.Contains(string(data), "\x1b[") {
		t.Error("file output should not be styled")
	}
}

func TestListCommandJSON(t *testing.T) {
	out, err := execute(t, "list", "-s", testSnapshot, "--format", "json")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	var body map[string][]string
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body["vpcs"]) != 3 {
		t.Errorf("vpcs = %q", body["vpcs"])
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no snapshot", []string{"-l"}, errors.ErrCodeInvalidInput},
		{"missing snapshot", []string{"-s", "does-not-exist", "-l"}, errors.ErrCodeFileNotFound},
		{"unknown vpc", []string{"-s", testSnapshot, "vpc-99"}, errors.ErrCodeVPCNotFound},
		{"bad vpc id", []string{"-s", testSnapshot, "sg-01"}, errors.ErrCodeInvalidVPCID},
		{"strict id", []string{"tree", "-s", testSnapshot, "--strict", "vpc-main"}, errors.ErrCodeInvalidVPCID},
		{"bad format", []string{"tree", "-s", testSnapshot, "-f", "svg", "vpc-0a1b2c3d"}, errors.ErrCodeInvalidInput},
		{"missing config", []string{"--config", "nope.toml", "-l"}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRootHelpWithoutArgs(t *testing.T) {
	out, err := execute(t)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "vpctree [VPC_ID]") {
		t.Errorf("help output missing usage:\n%s", out)
	}
}

func TestSnapshotPrecedence(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.config.Snapshot = "/from/config"
	if got := c.snapshot(); got != "/from/config" {
		t.Errorf("snapshot() = %q, want config value", got)
	}
	c.snapshotPath = "/from/flag"
	if got := c.snapshot(); got != "/from/flag" {
		t.Errorf("snapshot() = %q, want flag value", got)
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		backend string
		noCache bool
		want    string
	}{
		{"file", backendFile, false, "*cache.FileCache"},
		{"no cache flag", backendFile, true, "*cache.NullCache"},
		{"none", backendNone, false, "*cache.NullCache"},
		{"unreachable redis", backendRedis, false, "*cache.NullCache"},
		{"unreachable memcache", backendMemcache, false, "*cache.NullCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.Logger = log.New(io.Discard)
			c.config.Cache.Backend = tt.backend
			c.config.Cache.Dir = t.TempDir()
			c.config.Cache.Redis.Addr = "127.0.0.1:1"
			c.config.Cache.Memcache.Servers = []string{"127.0.0.1:1"}

			got, err := c.newCache(ctx, tt.noCache)
			if err != nil {
				t.Fatalf("newCache error: %v", err)
			}
			defer got.Close()

			name := fmt.Sprintf("%T", got)
			if name != tt.want {
				t.Errorf("newCache() = %s, want %s", name, tt.want)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv(envSnapshot, "")

	run := func(args ...string) string {
		t.Helper()
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	if got := strings.TrimSpace(run("cache", "path")); got != filepath.Join(cacheHome, appName) {
		t.Errorf("cache path = %q", got)
	}

	run("-s", testSnapshot, "vpc-0a1b2c3d")
	entries := func() int {
		n := 0
		_ = filepath.WalkDir(filepath.Join(cacheHome, appName), func(_ string, d os.DirEntry, err error) error {
			if err == nil && !d.IsDir() {
				n++
			}
			return nil
		})
		return n
	}
	if entries() == 0 {
		t.Fatal("rendering should populate the cache")
	}

	if out := run("cache", "clear"); !strings.Contains(out, "Cleared") {
		t.Errorf("cache clear output = %q", out)
	}
	if n := entries(); n != 0 {
		t.Errorf("%d cache entries left after clear", n)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "vpctree") {
		t.Errorf("bash completion does not mention vpctree:\n%.200s", out)
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestCompleteVPCIDs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(envSnapshot, testSnapshot)

	c := New(io.Discard, LogInfo)
	cmd := c.treeCommand()
	cmd.SetContext(context.Background())

	ids, directive := c.completeVPCIDs(cmd, nil, "")
	want := []string{"vpc-0a1b2c3d\t10.0.0.0/16", "vpc-0e0f0a0b\t172.31.0.0/16"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("completeVPCIDs() = %q, want %q", ids, want)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v", directive)
	}

	if ids, _ := c.completeVPCIDs(cmd, []string{"vpc-0a1b2c3d"}, ""); len(ids) != 0 {
		t.Errorf("second argument completions = %q", ids)
	}
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
