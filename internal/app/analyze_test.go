package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/docna/docna/internal/app"
	"github.com/docna/docna/internal/engine"
	"github.com/docna/docna/internal/presets"
	"github.com/docna/docna/internal/storage"
	"github.com/docna/docna/internal/storage/storagefakes"
	"github.com/docna/docna/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeConfig(t *testing.T, cfg app.AnalyzeConfig) *app.AnalyzeConfig {
	t.Helper()
	if cfg.InputFile == "" {
		cfg.InputFile = "sample1.tsv"
	}
	if cfg.Processes == 0 {
		cfg.Processes = 1
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = filepath.Join(t.TempDir(), "config.ini")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = t.TempDir()
	}
	out, err := app.NewAnalyzeConfig(cfg)
	require.NoError(t, err)
	return out
}

func TestAnalyze_DefaultArtifacts(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
	a, out, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
	cfg := analyzeConfig(t, app.AnalyzeConfig{SampleName: "S1"})

	// --- Act ---
	res, err := a.Analyze(context.Background(), cfg)

	// --- Assert ---
	require.NoError(t, err)
	testutil.AssertDirContains(t, cfg.OutputDir, "S1.bed", "S1.par", "S1.dat.gz")
	assert.Equal(t, "All done\n", out.String())
	assert.Equal(t, "S1", res.Sample)
	assert.NotEmpty(t, res.RunID)
	assert.Len(t, res.Artifacts, 3)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].Config.IsEmpty(), "a missing configuration file is an empty configuration")
	assert.Len(t, fake.Paths(), 1)
	assert.Equal(t, 1, reqs[0].Processes)
	assert.Equal(t, engine.LevelInfo, reqs[0].Level)
}

func TestAnalyze_ReportSolutions(t *testing.T) {
	t.Parallel()

	fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
	a, _, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
	cfg := analyzeConfig(t, app.AnalyzeConfig{SampleName: "S1", ReportSolutions: true})

	_, err := a.Analyze(context.Background(), cfg)

	require.NoError(t, err)
	testutil.AssertDirContains(t, cfg.OutputDir, "S1.bed", "S1.par", "S1.solutions", "S1.dat.gz")
}

func TestAnalyze_RerunOverwritesSameFiles(t *testing.T) {
	t.Parallel()

	fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
	a, _, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
	cfg := analyzeConfig(t, app.AnalyzeConfig{SampleName: "S1", ReportSolutions: true})

	first, err := a.Analyze(context.Background(), cfg)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Artifacts, second.Artifacts)
	assert.NotEqual(t, first.RunID, second.RunID)
	testutil.AssertDirContains(t, cfg.OutputDir, "S1.bed", "S1.par", "S1.solutions", "S1.dat.gz")
}

func TestAnalyze_SampleNameDerivedFromInput(t *testing.T) {
	t.Parallel()

	fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
	a, _, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
	cfg := analyzeConfig(t, app.AnalyzeConfig{InputFile: "/data/cohort/sample1.tsv"})

	res, err := a.Analyze(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, "sample1", res.Sample)
	assert.Equal(t, "sample1", fake.Requests()[0].SampleName)
	testutil.AssertDirContains(t, cfg.OutputDir, "sample1.bed", "sample1.par", "sample1.dat.gz")
}

func TestAnalyze_CoverageMode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		coverage float64
		wantAuto bool
	}{
		{name: "zero estimates", coverage: 0, wantAuto: true},
		{name: "fixed value", coverage: 27.5, wantAuto: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
			a, _, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
			cfg := analyzeConfig(t, app.AnalyzeConfig{SampleName: "S1", DiploidCoverage: tc.coverage})

			_, err := a.Analyze(context.Background(), cfg)

			require.NoError(t, err)
			req := fake.Requests()[0]
			assert.Equal(t, tc.wantAuto, req.AutoCoverage())
			assert.Equal(t, tc.coverage, req.DiploidCoverage)
		})
	}
}

func TestAnalyze_PresetCatalogReachesEngine(t *testing.T) {
	t.Parallel()

	fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
	a, _, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
	cfg := analyzeConfig(t, app.AnalyzeConfig{SampleName: "S1", Models: []string{"AABB"}})

	_, err := a.Analyze(context.Background(), cfg)

	require.NoError(t, err)
	catalog := fake.Requests()[0].Presets
	require.NotNil(t, catalog)
	p, ok := catalog.Get("AABB")
	require.True(t, ok)
	assert.Equal(t, presets.SourceExtra, p.Source, "selected extra preset overrides the default")
	_, ok = catalog.Get("AB")
	assert.True(t, ok, "defaults are always present")
}

func TestAnalyze_LoadsConfiguration(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "run.ini")
	require.NoError(t, os.WriteFile(configPath, []byte("[Input]\nmin_cov = 12\n"), 0o644))
	fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
	a, _, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
	cfg := analyzeConfig(t, app.AnalyzeConfig{SampleName: "S1", ConfigPath: configPath})

	_, err := a.Analyze(context.Background(), cfg)

	require.NoError(t, err)
	v, ok := fake.Requests()[0].Config.Get("Input", "min_cov")
	require.True(t, ok)
	assert.Equal(t, "12", v)
}

func TestAnalyze_Failures(t *testing.T) {
	t.Parallel()

	t.Run("malformed configuration", func(t *testing.T) {
		t.Parallel()
		configPath := filepath.Join(t.TempDir(), "bad.ini")
		require.NoError(t, os.WriteFile(configPath, []byte("[Input]\nno delimiter here\n"), 0o644))
		fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
		a, out, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
		cfg := analyzeConfig(t, app.AnalyzeConfig{SampleName: "S1", ConfigPath: configPath})

		_, err := a.Analyze(context.Background(), cfg)

		f, ok := app.AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, app.KindConfig, f.Kind)
		assert.Empty(t, fake.Requests(), "engine must not run")
		assert.Empty(t, out.String())
	})

	t.Run("engine failure", func(t *testing.T) {
		t.Parallel()
		fake := &testutil.FakeEngine{Err: errors.New("input has no heterozygous sites")}
		a, _, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
		cfg := analyzeConfig(t, app.AnalyzeConfig{SampleName: "S1"})

		_, err := a.Analyze(context.Background(), cfg)

		f, ok := app.AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, app.KindEngine, f.Kind)
		assert.Equal(t, 1, f.ExitCode())
		testutil.AssertDirContains(t, cfg.OutputDir)
	})

	t.Run("unknown preset", func(t *testing.T) {
		t.Parallel()
		fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
		a, _, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
		cfg := analyzeConfig(t, app.AnalyzeConfig{SampleName: "S1", Models: []string{"nope"}})

		_, err := a.Analyze(context.Background(), cfg)

		f, ok := app.AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, app.KindUsage, f.Kind)
		assert.Equal(t, 2, f.ExitCode())
	})

	t.Run("missing report keeps earlier artifacts", func(t *testing.T) {
		t.Parallel()
		result := testutil.SampleResult()
		delete(result.Reports, engine.ReportParams)
		fake := &testutil.FakeEngine{Result: result}
		a, _, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
		cfg := analyzeConfig(t, app.AnalyzeConfig{SampleName: "S1"})

		_, err := a.Analyze(context.Background(), cfg)

		f, ok := app.AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, app.KindEngine, f.Kind)
		testutil.AssertDirContains(t, cfg.OutputDir, "S1.bed")
	})

	t.Run("unwritable output directory", func(t *testing.T) {
		t.Parallel()
		fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
		a, _, _ := app.SetupAppTest(t, app.Deps{Engine: fake.Factory()})
		cfg := analyzeConfig(t, app.AnalyzeConfig{
			SampleName: "S1",
			OutputDir:  filepath.Join(t.TempDir(), "missing", "dir"),
		})

		_, err := a.Analyze(context.Background(), cfg)

		f, ok := app.AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, app.KindIO, f.Kind)
	})
}

func TestAnalyze_PublishesArtifacts(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
	store := &storagefakes.FakeStorage{}
	var gotCfg storage.S3Config
	a, _, _ := app.SetupAppTest(t, app.Deps{
		Engine: fake.Factory(),
		Storage: func(cfg storage.S3Config) (storage.Storage, error) {
			gotCfg = cfg
			return store, nil
		},
	})
	cfg := analyzeConfig(t, app.AnalyzeConfig{
		SampleName: "S1",
		Publish:    app.PublishConfig{Bucket: "cnv-results", Prefix: "cohort7", Region: "eu-west-1"},
	})

	// --- Act ---
	res, err := a.Analyze(context.Background(), cfg)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, storage.S3Config{Bucket: "cnv-results", Region: "eu-west-1"}, gotCfg)
	assert.Equal(t, []string{"cohort7/S1.bed", "cohort7/S1.par", "cohort7/S1.dat.gz"}, res.Published)
	assert.Equal(t, res.Published, store.Keys())
}

func TestAnalyze_PublishFailureIsIOFailure(t *testing.T) {
	t.Parallel()

	fake := &testutil.FakeEngine{Result: testutil.SampleResult()}
	a, _, _ := app.SetupAppTest(t, app.Deps{
		Engine: fake.Factory(),
		Storage: func(storage.S3Config) (storage.Storage, error) {
			return &storagefakes.FakeStorage{PutErr: errors.New("denied")}, nil
		},
	})
	cfg := analyzeConfig(t, app.AnalyzeConfig{SampleName: "S1", Publish: app.PublishConfig{Bucket: "b"}})

	_, err := a.Analyze(context.Background(), cfg)

	f, ok := app.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, app.KindIO, f.Kind)
	testutil.AssertDirContains(t, cfg.OutputDir, "S1.bed", "S1.par", "S1.dat.gz")
}

func TestAnalyze_ThroughEngineProcess(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, out, _ := app.SetupAppTest(t, app.Deps{})
	cfg := analyzeConfig(t, app.AnalyzeConfig{
		SampleName:      "S1",
		ReportSolutions: true,
		EnginePath:      testutil.WriteEngineScript(t, testutil.SampleResult()),
	})

	// --- Act ---
	res, err := a.Analyze(context.Background(), cfg)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "All done\n", out.String())
	assert.Len(t, res.Artifacts, 4)
	testutil.AssertDirContains(t, cfg.OutputDir, "S1.bed", "S1.par", "S1.solutions", "S1.dat.gz")
	bed, err := os.ReadFile(filepath.Join(cfg.OutputDir, "S1.bed"))
	require.NoError(t, err)
	assert.Equal(t, "chr2\t0\t4000000\tAB\t2\nchr1\t0\t2500000\tAAB\t3\n", string(bed))
}
