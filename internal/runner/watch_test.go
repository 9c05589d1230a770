package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dushixiang/ejpatch/internal/config"
	"github.com/dushixiang/ejpatch/internal/patches"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatchReappliesAfterRewrite(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, patches.ItemsFieldMappingPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, []byte(itemsJS), 0644))

	c := config.Default()
	c.Root = root
	r := New(afero.NewBasePathFs(afero.NewOsFs(), root), c, zap.NewNop(), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Watch(ctx, patches.ItemsFieldMappingName)
	}()

	patched := func() bool {
		data, err := os.ReadFile(target)
		return err == nil && strings.Contains(string(data), "const rawData = await")
	}

	// 启动时先执行一次
	require.Eventually(t, patched, 5*time.Second, 20*time.Millisecond)

	// 文件被重新生成后再次打补丁
	require.NoError(t, os.WriteFile(target, []byte(itemsJS), 0644))
	require.Eventually(t, patched, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	root := t.TempDir()
	c := config.Default()
	c.Root = root
	r := New(afero.NewBasePathFs(afero.NewOsFs(), root), c, zap.NewNop(), Options{})

	err := r.Watch(context.Background(), patches.AdapterInfoBoxName)
	assert.Error(t, err)
}
