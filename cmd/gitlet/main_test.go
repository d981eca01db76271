package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	th := NewTestHelper(t)

	out := th.MustRun("init")
	assert.Contains(t, out, "Initialized empty Gitlet repository")

	for _, p := range []string{".gitlet", ".gitlet/refs/HEAD", ".gitlet/config.yaml", ".gitlet/catalog.db"} {
		assert.True(t, th.Exists(p), p)
	}

	res := th.Run("init")
	assert.Equal(t, 1, res.Code)
	assert.Equal(t, "A Gitlet version-control system already exists in the current directory.\n", res.Stderr)
}

func TestInitOptions(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo("--hash", "blake3", "--default-branch", "main")

	assert.Equal(t, "blake3\n", th.MustRun("config", "core.hashAlgorithm"))
	assert.Contains(t, th.MustRun("status"), "*main\n")

	log := th.MustRun("log")
	require.True(t, strings.HasPrefix(log, "===\ncommit "))
	id := strings.TrimPrefix(strings.SplitN(log, "\n", 3)[1], "commit ")
	assert.Len(t, id, 64)
}

func TestInitRejectsUnknownHash(t *testing.T) {
	th := NewTestHelper(t)

	res := th.Run("init", "--hash", "md5")
	assert.Equal(t, 1, res.Code)
	assert.Equal(t, "Incorrect operands.\n", res.Stderr)
	assert.False(t, th.Exists(".gitlet"))
}

func TestFailureLines(t *testing.T) {
	th := NewTestHelper(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "Please enter a command."},
		{"unknown command", []string{"push"}, "No command with that name exists."},
		{"outside repository", []string{"status"}, "Not in an initialized Gitlet directory."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := th.Run(tt.args...)
			assert.Equal(t, 1, res.Code)
			assert.Equal(t, tt.want+"\n", res.Stderr)
			assert.Empty(t, res.Stdout)
		})
	}

	th.InitRepo()
	th.Commit("add a", map[string]string{"a.txt": "a\n"})

	repoTests := []struct {
		name string
		args []string
		want string
	}{
		{"add missing file", []string{"add", "nope.txt"}, "File does not exist."},
		{"commit nothing", []string{"commit", "empty"}, "No changes added to the commit."},
		{"rm untracked", []string{"rm", "nope.txt"}, "No reason to remove the file."},
		{"rm without operand", []string{"rm"}, "Incorrect operands."},
		{"status with operand", []string{"status", "x"}, "Incorrect operands."},
		{"unknown flag", []string{"log", "--bogus"}, "Incorrect operands."},
		{"checkout file not in commit", []string{"checkout", "--", "nope.txt"}, "File does not exist in that commit."},
		{"checkout unknown commit", []string{"checkout", "deadbeef", "--", "a.txt"}, "No commit with that id exists."},
		{"checkout unknown branch", []string{"checkout", "nope"}, "No such branch exists."},
		{"checkout current branch", []string{"checkout", "master"}, "No need to checkout the current branch."},
		{"checkout bad operands", []string{"checkout", "a", "b"}, "Incorrect operands."},
		{"branch exists", []string{"branch", "master"}, "A branch with that name already exists."},
		{"rm current branch", []string{"rm-branch", "master"}, "Cannot remove the current branch."},
		{"rm unknown branch", []string{"rm-branch", "nope"}, "No such branch exists."},
		{"find nothing", []string{"find", "no such message"}, "Found no commit with that message."},
		{"reset unknown", []string{"reset", "0000000"}, "No commit with that id exists."},
		{"merge self", []string{"merge", "master"}, "Cannot merge a branch with itself."},
		{"merge unknown", []string{"merge", "nope"}, "No such branch exists."},
	}
	for _, tt := range repoTests {
		t.Run(tt.name, func(t *testing.T) {
			res := th.Run(tt.args...)
			assert.Equal(t, 1, res.Code)
			assert.Equal(t, tt.want+"\n", res.Stderr)
		})
	}
}

func TestCommitWithoutMessage(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.WriteFile("a.txt", "a\n")
	th.MustRun("add", "a.txt")

	res := th.Run("commit")
	assert.Equal(t, "Please enter a commit message.\n", res.Stderr)

	res = th.Run("commit", "   ")
	assert.Equal(t, "Please enter a commit message.\n", res.Stderr)
}

func TestStagingWorkflow(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()

	th.WriteFile("a.txt", "a\n")
	th.WriteFile("b.txt", "b\n")
	th.MustRun("add", "a.txt", "b.txt")
	th.MustRun("commit", "two files")

	th.MustRun("rm", "b.txt")
	assert.False(t, th.Exists("b.txt"))
	th.WriteFile("a.txt", "changed\n")
	th.WriteFile("new.txt", "new\n")

	want := "=== Branches ===\n*master\n\n" +
		"=== Staged Files ===\n\n" +
		"=== Removed Files ===\nb.txt\n\n" +
		"=== Modifications Not Staged For Commit ===\na.txt (modified)\n\n" +
		"=== Untracked Files ===\nnew.txt\n\n"
	assert.Equal(t, want, th.MustRun("status"))

	th.MustRun("add", "a.txt")
	th.MustRun("commit", "drop b")

	log := th.MustRun("log")
	assert.Equal(t, 3, strings.Count(log, "===\ncommit "))
	assert.Less(t, strings.Index(log, "drop b"), strings.Index(log, "two files"))
	assert.Contains(t, log, "initial commit")

	ids := strings.Fields(th.MustRun("find", "two files"))
	require.Len(t, ids, 1)
	assert.Contains(t, log, "commit "+ids[0])
}

func TestAddFromSubdirectory(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.WriteFile("sub/file.txt", "nested\n")

	t.Chdir(filepath.Join(th.Dir(), "sub"))
	th.MustRun("add", "file.txt")

	assert.Contains(t, th.MustRun("status"), "=== Staged Files ===\nsub/file.txt\n")
}

func TestCheckoutForms(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.Commit("version one", map[string]string{"f.txt": "v1\n"})
	first := strings.TrimSpace(th.MustRun("find", "version one"))
	th.Commit("version two", map[string]string{"f.txt": "v2\n"})

	th.WriteFile("f.txt", "scratch\n")
	th.MustRun("checkout", "--", "f.txt")
	assert.Equal(t, "v2\n", th.ReadFile("f.txt"))

	th.MustRun("checkout", first[:8], "--", "f.txt")
	assert.Equal(t, "v1\n", th.ReadFile("f.txt"))

	th.MustRun("checkout", "--", "f.txt")
	th.MustRun("branch", "other")
	th.Commit("only on master", map[string]string{"m.txt": "m\n"})

	th.MustRun("checkout", "other")
	assert.False(t, th.Exists("m.txt"))
	assert.Contains(t, th.MustRun("status"), "*other\n")

	th.WriteFile("m.txt", "in the way\n")
	res := th.Run("checkout", "master")
	assert.Equal(t, "There is an untracked file in the way; delete it, or add and commit it first.\n", res.Stderr)
	assert.Equal(t, "in the way\n", th.ReadFile("m.txt"))
}

func TestBranchListing(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.MustRun("branch", "feature")

	out := th.MustRun("branch")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "feature")
	assert.True(t, strings.HasPrefix(lines[1], "*"))
	assert.Contains(t, lines[1], "master")

	th.MustRun("rm-branch", "feature")
	assert.NotContains(t, th.MustRun("branch"), "feature")
}

func TestResetCommand(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.Commit("keep", map[string]string{"a.txt": "a\n"})
	keep := strings.TrimSpace(th.MustRun("find", "keep"))
	th.Commit("later", map[string]string{"b.txt": "b\n"})

	th.MustRun("reset", keep)

	assert.False(t, th.Exists("b.txt"))
	log := th.MustRun("log")
	assert.NotContains(t, log, "later")
	assert.Contains(t, th.MustRun("global-log"), "later")
}

func TestMergeCommand(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.Commit("base", map[string]string{"f.txt": "a\n"})
	th.MustRun("branch", "other")

	th.MustRun("checkout", "other")
	th.Commit("other edit", map[string]string{"f.txt": "c\n"})
	th.MustRun("checkout", "master")

	assert.Equal(t, "Current branch fast-forwarded.\n", th.MustRun("merge", "other"))
	assert.Equal(t, "c\n", th.ReadFile("f.txt"))
	assert.Equal(t, "Given branch is an ancestor of the current branch.\n", th.MustRun("merge", "other"))

	th.MustRun("checkout", "other")
	th.Commit("other again", map[string]string{"f.txt": "given\n"})
	th.MustRun("checkout", "master")
	th.Commit("master edit", map[string]string{"f.txt": "current\n"})

	assert.Equal(t, "Encountered a merge conflict.\n", th.MustRun("merge", "other"))
	assert.Equal(t, "<<<<<<< HEAD\ncurrent\n=======\ngiven\n>>>>>>>\n", th.ReadFile("f.txt"))

	log := th.MustRun("log")
	assert.True(t, strings.HasPrefix(log, "===\ncommit "))
	assert.Contains(t, strings.SplitN(log, "Date:", 2)[0], "Merge: ")
	assert.Contains(t, log, "Merged other into master.")
}

func TestMergeWithStagedChanges(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.MustRun("branch", "other")
	th.WriteFile("a.txt", "a\n")
	th.MustRun("add", "a.txt")

	res := th.Run("merge", "other")
	assert.Equal(t, "You have uncommitted changes.\n", res.Stderr)
}

func TestLogTable(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.Commit("tabled", map[string]string{"a.txt": "a\n"})

	out := th.MustRun("log", "--table")
	assert.Contains(t, out, "Commit History")
	assert.Contains(t, strings.ToUpper(out), "MESSAGE")
	assert.Contains(t, out, "tabled")
	assert.Contains(t, out, "initial commit")

	out = th.MustRun("global-log", "-t")
	assert.Contains(t, out, "All Commits")
	assert.Contains(t, out, "tabled")
}

func TestConfigCommand(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()

	all := th.MustRun("config")
	assert.Contains(t, all, "core.hashAlgorithm")
	assert.Contains(t, all, "sha1")

	assert.Equal(t, "false\n", th.MustRun("config", "core.strictShortIds"))
	th.MustRun("config", "core.strictShortIds", "true")
	assert.Equal(t, "true\n", th.MustRun("config", "core.strictShortIds"))

	res := th.Run("config", "core.hashAlgorithm", "blake3")
	assert.Equal(t, 1, res.Code)
	assert.Equal(t, "sha1\n", th.MustRun("config", "core.hashAlgorithm"))

	data, err := os.ReadFile(filepath.Join(th.Dir(), ".gitlet", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "strictShortIds: true")
}
