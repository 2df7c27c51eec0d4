package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRuleFile_AppendAndRead tests appending user rules
// TestRuleFile_AppendAndRead 测试追加用户规则
func TestRuleFile_AppendAndRead(t *testing.T) {
	dir := t.TempDir()
	rf := NewRuleFile(filepath.Join(dir, "user_rules.txt"), filepath.Join(dir, "local.rules"))

	content, err := rf.ReadUser()
	require.NoError(t, err)
	assert.Equal(t, NoUserRules, content)

	require.NoError(t, rf.Append(`alert tcp any any -> any 22 (msg:"ssh"; sid:1; rev:1;)`))
	require.NoError(t, rf.Append("  alert icmp any any -> any any (msg:\"ping\"; sid:2; rev:1;)\n"))

	content, err = rf.ReadUser()
	require.NoError(t, err)
	assert.Equal(t, "\nalert tcp any any -> any 22 (msg:\"ssh\"; sid:1; rev:1;)\nalert icmp any any -> any any (msg:\"ping\"; sid:2; rev:1;)", content)
}

// TestRuleFile_ReadLocal tests the local rules placeholder and content
func TestRuleFile_ReadLocal(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "local.rules")
	rf := NewRuleFile(filepath.Join(dir, "user_rules.txt"), local)

	content, err := rf.ReadLocal()
	require.NoError(t, err)
	assert.Equal(t, NoLocalRules, content)

	require.NoError(t, os.WriteFile(local, []byte("alert ip any any -> any any"), 0644))
	content, err = rf.ReadLocal()
	require.NoError(t, err)
	assert.Equal(t, "alert ip any any -> any any", content)
}

// TestRuleFile_MergeIntoLocal tests backup and replacement
// TestRuleFile_MergeIntoLocal 测试备份与替换
func TestRuleFile_MergeIntoLocal(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "local.rules")
	rf := NewRuleFile(filepath.Join(dir, "user_rules.txt"), local)
	require.NoError(t, os.WriteFile(local, []byte("old rule\n"), 0644))
	require.NoError(t, rf.Append("new rule"))

	require.NoError(t, rf.MergeIntoLocal())

	data, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, "new rule\n", string(data))

	backup, err := os.ReadFile(rf.BackupPath())
	require.NoError(t, err)
	assert.Equal(t, "old rule\n", string(backup))
}

// TestRuleFile_MergeWithoutFiles tests merging when neither file exists
func TestRuleFile_MergeWithoutFiles(t *testing.T) {
	dir := t.TempDir()
	rf := NewRuleFile(filepath.Join(dir, "user_rules.txt"), filepath.Join(dir, "rules", "local.rules"))

	require.NoError(t, rf.MergeIntoLocal())

	data, err := os.ReadFile(rf.LocalPath())
	require.NoError(t, err)
	assert.Equal(t, "\n", string(data))
	_, err = os.Stat(rf.BackupPath())
	assert.True(t, os.IsNotExist(err))
}
