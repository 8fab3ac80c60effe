package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"hrr-numbers/params"
	"hrr-numbers/probe"
)

func newTestApp() *app {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &app{v: viper.New(), log: log}
}

func TestSetupLogger(t *testing.T) {
	log := logrus.New()
	setupLogger(log, "DEBUG")
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level %v, want debug", log.GetLevel())
	}
	log.SetOutput(io.Discard)
	setupLogger(log, "loud")
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("unknown level should fall back to info, got %v", log.GetLevel())
	}
}

func TestBasisCommandWritesParameters(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp()
	root := a.rootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"basis", "--bound", "30", "--beta", "40", "--out", dir, "--log-level", "error"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("basis: %v", err)
	}
	p, err := params.Load(filepath.Join(dir, params.FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Modulus != 30 || p.Beta != 40 || p.Bound != 30 {
		t.Fatalf("unexpected parameters %+v", p)
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "hrr.yaml")
	body := "bound: 210\nbeta: 12.5\nprobe:\n  op: div\n  sample: 50\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HRR_PROBE_SEED", "from-env")

	a := newTestApp()
	root := a.rootCmd()
	root.SetArgs([]string{"basis", "--config", cfg, "--out", dir, "--log-level", "error"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("basis: %v", err)
	}
	if got := a.v.GetInt64("bound"); got != 210 {
		t.Fatalf("bound %d, want 210 from file", got)
	}
	if got := a.v.GetFloat64("beta"); got != 12.5 {
		t.Fatalf("beta %v, want 12.5 from file", got)
	}
	if got := a.v.GetString("probe.seed"); got != "from-env" {
		t.Fatalf("seed %q, want value from HRR_PROBE_SEED", got)
	}
	if got := a.v.GetString("probe.op"); got != "div" {
		t.Fatalf("op %q, want div", got)
	}
}

func TestMissingConfigFile(t *testing.T) {
	a := newTestApp()
	root := a.rootCmd()
	root.SetArgs([]string{"basis", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "--out", t.TempDir()})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected error for a missing config file")
	}
}

func TestCheckCommandReportsYAML(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp()
	root := a.rootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"check", "--bound", "30", "--beta", "0", "--limit", "5", "--workers", "2", "--log-level", "error"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("check: %v", err)
	}
	var rep probe.Report
	if err := yaml.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out.String())
	}
	// β = 0 decodes every product to 0: the 4·4 pairs with a nonzero
	// product fail
	if rep.Op != probe.OpMul || rep.Modulus != 30 || rep.Pairs != 25 || rep.Failures != 16 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestSweepCommandDecodesBetas(t *testing.T) {
	dir := t.TempDir()
	plotPath := filepath.Join(dir, "rate.png")
	var out bytes.Buffer
	a := newTestApp()
	root := a.rootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"sweep", "--bound", "30", "--betas", "75,0", "--limit", "5", "--plot", plotPath, "--log-level", "error"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	var points []probe.Point
	if err := yaml.Unmarshal(out.Bytes(), &points); err != nil {
		t.Fatalf("decode points: %v\n%s", err, out.String())
	}
	if len(points) != 2 || points[0].Beta != 0 || points[1].Beta != 75 {
		t.Fatalf("points %+v want β 0 then 75", points)
	}
	if points[0].Failures != 16 || !(points[1].ErrorRate < points[0].ErrorRate) {
		t.Fatalf("error rate did not fall with β: %+v", points)
	}
	if fi, err := os.Stat(plotPath); err != nil || fi.Size() == 0 {
		t.Fatalf("plot not written: %v", err)
	}
}
