package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/realty/internal/paths"
	"github.com/mesh-intelligence/realty/internal/sqlite"
	"github.com/mesh-intelligence/realty/pkg/types"
)

// testEnv is one isolated pair of config and data directories. Every call to
// run is a separate invocation, like a separate process sharing the disk.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, key := range []string{"REALTY_BACKEND", "REALTY_LOG_LEVEL", "REALTY_LOG_FORMAT", paths.EnvDataDir, paths.EnvConfigDir} {
		t.Setenv(key, "")
	}
	return &testEnv{t: t, configDir: t.TempDir(), dataDir: t.TempDir()}
}

type result struct {
	code   int
	stdout string
	stderr string
}

func (e *testEnv) run(args ...string) result {
	e.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code := Run(full, &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	r := e.run(args...)
	require.Equal(e.t, exitSuccess, r.code, "realty %s\nstderr: %s", strings.Join(args, " "), r.stderr)
	return r.stdout
}

var apartmentArgs = []string{"property", "add", "--type", "apartment", "--listing", "sale",
	"--size", "80", "--price", "100000", "--bedrooms", "2", "--bathrooms", "1",
	"--place", "Hamra", "--available"}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("version")
	assert.Contains(t, out, "realty v"+Version)
	assert.Contains(t, out, modulePath)
}

func TestPropertyLifecycleAcrossInvocations(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(apartmentArgs...)
	assert.Equal(t, "Created property 1\n", out)

	out = env.mustRun("--json", "property", "get", "1")
	var p types.Property
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Hamra", p.Place)
	assert.Equal(t, 2, p.Bedrooms)
	assert.True(t, p.Available)

	out = env.mustRun("property", "remove", "1")
	assert.Equal(t, "Removed property 1\n", out)

	r := env.run("property", "get", "1")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "property 1 not found")

	r = env.run("property", "remove", "1")
	assert.Equal(t, exitUserError, r.code)

	// The deleted id is not handed out again.
	out = env.mustRun(apartmentArgs...)
	assert.Equal(t, "Created property 2\n", out)
}

func TestLandHasNoRooms(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("property", "add", "--type", "land", "--listing", "sale", "--size", "500",
		"--price", "250000", "--bedrooms", "3", "--place", "Batroun")

	out := env.mustRun("--json", "property", "get", "1")
	var p types.Property
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, 0, p.Bedrooms)
	assert.Equal(t, 0, p.Bathrooms)
}

func TestUpdateAppliesOnlyGivenFlags(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("agent", "add", "--first-name", "Rana", "--last-name", "Haddad",
		"--phone", "71123456", "--email", "rana@realty.lb", "--start-date", "2015-03-01")

	out := env.mustRun("agent", "update", "1", "--email", "rana.h@realty.lb", "--end-date", "2020-01-01")
	assert.Equal(t, "Updated agent 1\n", out)

	out = env.mustRun("--json", "agent", "get", "1")
	var a types.Agent
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, "Rana", a.FirstName)
	assert.Equal(t, "71123456", a.Phone)
	assert.Equal(t, "rana.h@realty.lb", a.Email)
	assert.Equal(t, "2015-03-01", a.StartDate.String())
	assert.Equal(t, "2020-01-01", a.EndDate.String())

	out = env.mustRun("agent", "update", "1", "--end-date", "empty")
	assert.Equal(t, "Updated agent 1\n", out)
	out = env.mustRun("--json", "agent", "get", "1")
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.True(t, a.EndDate.IsEmpty())

	r := env.run("agent", "update", "1", "--end-date", "2010-01-01")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "Error:")
}

func TestUserErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid phone", []string{"client", "add", "--first-name", "Omar", "--last-name", "Khalil",
			"--phone", "123", "--email", "omar@mail.com", "--budget-type", "rent"}, "phone"},
		{"digits in name", []string{"client", "add", "--first-name", "Om4r", "--last-name", "Khalil",
			"--phone", "03123456", "--email", "omar@mail.com", "--budget-type", "rent"}, "first name"},
		{"thirty-first day", []string{"agent", "add", "--first-name", "Rana", "--last-name", "Haddad",
			"--phone", "71123456", "--email", "rana@realty.lb", "--start-date", "2015-01-31"}, "day"},
		{"bad date format", []string{"agent", "add", "--first-name", "Rana", "--last-name", "Haddad",
			"--phone", "71123456", "--email", "rana@realty.lb", "--start-date", "2015/01/30"}, "2015/01/30"},
		{"missing required flags", []string{"agent", "add", "--first-name", "Rana"}, `"last-name"`},
		{"unknown flag", []string{"agent", "list", "--bogus"}, "bogus"},
		{"bad flag value", []string{"property", "add", "--size", "big"}, "size"},
		{"missing id", []string{"agent", "get"}, "arg"},
		{"non-numeric id", []string{"agent", "get", "one"}, `invalid id "one"`},
		{"unknown command", []string{"broker", "list"}, "unknown command"},
		{"unknown subcommand", []string{"agent", "fire"}, `unknown command "fire"`},
		{"bad log level", []string{"--log-level", "loud", "agent", "list"}, "log level"},
		{"not found on update", []string{"client", "update", "7", "--budget", "5"}, "client 7 not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			r := env.run(tt.args...)
			assert.Equal(t, exitUserError, r.code, "stderr: %s", r.stderr)
			assert.Contains(t, r.stderr, tt.want)
		})
	}
}

func TestNonFiniteAmountsAreUserErrors(t *testing.T) {
	env := newTestEnv(t)

	for _, v := range []string{"NaN", "Inf", "-Inf"} {
		args := append([]string{}, apartmentArgs...)
		for i := range args {
			if args[i] == "--size" {
				args[i+1] = v
			}
		}
		r := env.run(args...)
		assert.Equal(t, exitUserError, r.code, "size %s stderr: %s", v, r.stderr)
		assert.Contains(t, r.stderr, "size must be a finite number")
	}

	r := env.run("client", "add", "--first-name", "Omar", "--last-name", "Khalil",
		"--phone", "03123456", "--email", "omar@mail.com", "--budget-type", "rent", "--budget", "Inf")
	assert.Equal(t, exitUserError, r.code, "stderr: %s", r.stderr)
	assert.Contains(t, r.stderr, "budget must be a finite number")

	assert.Equal(t, "[]\n", env.mustRun("--json", "property", "list"))
	assert.Contains(t, env.mustRun("property", "add", "--type", "land", "--listing", "sale",
		"--size", "500", "--price", "90000", "--place", "Jbeil"), "Created property 1")
}

func TestContractCreationPaths(t *testing.T) {
	env := newTestEnv(t)
	contract := []string{"--type", "rent", "--property-id", "1", "--client-id", "1", "--agent-id", "1",
		"--price", "900", "--start-date", "2022-01-01", "--end-date", "2022-12-01"}

	// Direct path stores dangling references.
	out := env.mustRun(append([]string{"contract", "add"}, contract...)...)
	assert.Equal(t, "Created contract 1\n", out)

	// Verified path checks the property first.
	r := env.run(append([]string{"contract", "create"}, contract...)...)
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "property 1")

	env.mustRun(apartmentArgs...)
	r = env.run(append([]string{"contract", "create"}, contract...)...)
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "client 1")

	env.mustRun("client", "add", "--first-name", "Omar", "--last-name", "Khalil",
		"--phone", "03123456", "--email", "omar@mail.com", "--budget", "1500", "--budget-type", "rent")
	env.mustRun("agent", "add", "--first-name", "Rana", "--last-name", "Haddad",
		"--phone", "71123456", "--email", "rana@realty.lb", "--start-date", "2015-03-01")

	sale := []string{"contract", "create", "--type", "sale", "--property-id", "1", "--client-id", "1",
		"--agent-id", "1", "--price", "100000", "--start-date", "2022-01-01", "--end-date", "2022-12-01",
		"--active=false"}
	out = env.mustRun(sale...)
	assert.Equal(t, "Created contract 2\n", out)

	out = env.mustRun("--json", "contract", "list")
	var contracts []types.Contract
	require.NoError(t, json.Unmarshal([]byte(out), &contracts))
	require.Len(t, contracts, 2)
	assert.Equal(t, 1, contracts[0].ID)
	assert.Equal(t, types.ContractTypeSale, contracts[1].ContractType)
	assert.True(t, contracts[1].EndDate.IsEmpty())
	assert.True(t, contracts[1].IsActive)

	// Switching a rent contract to sale drops its end date.
	env.mustRun("contract", "update", "1", "--type", "sale")
	out = env.mustRun("--json", "contract", "get", "1")
	var c types.Contract
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.True(t, c.EndDate.IsEmpty())
	assert.True(t, c.IsActive)
}

func TestListOutput(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, "[]\n", env.mustRun("--json", "agent", "list"))

	env.mustRun(apartmentArgs...)
	env.mustRun("property", "add", "--type", "house", "--listing", "rent", "--size", "200",
		"--price", "2500", "--bedrooms", "4", "--bathrooms", "3", "--place", "Jounieh")

	out := env.mustRun("property", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Hamra")
	assert.Contains(t, lines[2], "Jounieh")
	assert.Contains(t, lines[2], "no")
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)
	configDir := filepath.Join(env.configDir, "nested")
	var out, errOut bytes.Buffer

	code := Run([]string{"--config-dir", configDir, "--data-dir", env.dataDir, "init"}, &out, &errOut)
	require.Equal(t, exitSuccess, code, errOut.String())
	assert.Contains(t, out.String(), "Realty initialized")

	data, err := os.ReadFile(filepath.Join(configDir, "config.yaml"))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, types.BackendSQLite, cfg.Backend)
	assert.Equal(t, env.dataDir, cfg.DataDir)
	assert.Equal(t, defaultLogLevel, cfg.LogLevel)

	_, err = os.Stat(filepath.Join(env.dataDir, sqlite.DBFileName))
	assert.NoError(t, err)

	// A second init keeps the existing file.
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("backend: sqlite\nlog_level: warn\n"), 0o644))
	out.Reset()
	code = Run([]string{"--config-dir", configDir, "--data-dir", env.dataDir, "init"}, &out, &errOut)
	require.Equal(t, exitSuccess, code, errOut.String())
	data, err = os.ReadFile(filepath.Join(configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "backend: sqlite\nlog_level: warn\n", string(data))
}

func TestDataDirFromConfigFile(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "config.yaml"), []byte("data_dir: db\n"), 0o644))

	var out, errOut bytes.Buffer
	code := Run(append([]string{"--config-dir", env.configDir}, apartmentArgs...), &out, &errOut)
	require.Equal(t, exitSuccess, code, errOut.String())

	_, err := os.Stat(filepath.Join(env.configDir, "db", sqlite.DBFileName))
	assert.NoError(t, err)
}

func TestSystemErrors(t *testing.T) {
	t.Run("unknown backend in config", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "config.yaml"), []byte("backend: postgres\n"), 0o644))
		r := env.run("agent", "list")
		assert.Equal(t, exitSysError, r.code)
		assert.Contains(t, r.stderr, "unknown backend")
	})

	t.Run("backend from .env file", func(t *testing.T) {
		env := newTestEnv(t)
		// godotenv never overrides a variable that is already present.
		require.NoError(t, os.Unsetenv("REALTY_BACKEND"))
		require.NoError(t, os.WriteFile(filepath.Join(env.configDir, ".env"), []byte("REALTY_BACKEND=postgres\n"), 0o644))
		r := env.run("agent", "list")
		assert.Equal(t, exitSysError, r.code)
		assert.Contains(t, r.stderr, "unknown backend")
	})

	t.Run("malformed config", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "config.yaml"), []byte("backend: [\n"), 0o644))
		r := env.run("agent", "list")
		assert.Equal(t, exitSysError, r.code)
		assert.Contains(t, r.stderr, "reading config")
	})
}

func TestExportAndStats(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(apartmentArgs...)
	env.mustRun(apartmentArgs...)
	env.mustRun("property", "remove", "1")
	env.mustRun("contract", "add", "--type", "rent", "--property-id", "2", "--client-id", "9",
		"--agent-id", "9", "--price", "900", "--start-date", "2022-01-01", "--active=false")

	exportDir := filepath.Join(t.TempDir(), "out")
	out := env.mustRun("export", exportDir)
	assert.Contains(t, out, "Exported 4 tables")
	for _, name := range []string{sqlite.AgentsJSONL, sqlite.ClientsJSONL, sqlite.PropertiesJSONL, sqlite.ContractsJSONL} {
		_, err := os.Stat(filepath.Join(exportDir, name))
		assert.NoError(t, err, name)
	}
	data, err := os.ReadFile(filepath.Join(exportDir, sqlite.PropertiesJSONL))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))

	out = env.mustRun("--json", "stats")
	var st storeStats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, 1, st.Properties)
	assert.Equal(t, 1, st.AvailableProperties)
	assert.Equal(t, 1, st.Contracts)
	assert.Equal(t, 0, st.ActiveContracts)
	assert.Equal(t, 3, st.NextIDs[types.KindProperty])
	assert.Equal(t, 1, st.NextIDs[types.KindAgent])
}
