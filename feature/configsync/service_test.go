package configsync

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"netbox-sync/core/storage/mocks"

	"github.com/go-routeros/routeros/v3"
	"github.com/go-routeros/routeros/v3/proto"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedConn replays canned replies per API command.
type scriptedConn struct {
	replies map[string][]map[string]string
	failOn  string
	closed  bool
}

func (c *scriptedConn) Run(sentence ...string) (*routeros.Reply, error) {
	cmd := sentence[0]
	if c.failOn == cmd {
		return nil, errors.New("simulated device error")
	}

	reply := &routeros.Reply{}
	for _, m := range c.replies[cmd] {
		reply.Re = append(reply.Re, &proto.Sentence{Map: m})
	}
	return reply, nil
}

func (c *scriptedConn) Close() error {
	c.closed = true
	return nil
}

func coreSwitchReplies() map[string][]map[string]string {
	return map[string][]map[string]string{
		"/system/identity/print": {{"name": "core-switch"}},
		"/interface/print": {
			{"name": "ether1", "type": "ether", "mac-address": "DC:2C:6E:0F:12:34", "mtu": "1500", "running": "true", "disabled": "false"},
			{"name": "sfp-sfpplus1", "type": "ether", "running": "false", "disabled": "true"},
		},
		"/interface/vlan/print": {
			{"name": "vlan10-mgmt", "vlan-id": "10", "interface": "bridge", "disabled": "false"},
		},
		"/interface/bridge/port/print": {
			{"interface": "ether1", "bridge": "bridge", "pvid": "10", "frame-types": "admit-all"},
		},
		"/ip/address/print": {
			{"address": "192.168.88.1/24", "interface": "bridge", "network": "192.168.88.0", "disabled": "false"},
		},
		"/ip/firewall/filter/print": {
			{"chain": "input", "action": "accept", "protocol": "icmp", "comment": "allow ping", "disabled": "false"},
		},
		"/snmp/print": {
			{"enabled": "true", "contact": "noc", "location": "Main Office"},
		},
	}
}

func newTestService(t *testing.T, conn apiConn) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := Config{
		Output:         filepath.Join(dir, "configs"),
		Commit:         false,
		TimeoutSeconds: 1,
	}

	svc := NewService(cfg, nil, "", zap.NewNop())
	svc.dial = func(d Device, timeout time.Duration) (apiConn, error) {
		if conn == nil {
			return nil, errors.New("connection refused")
		}
		return conn, nil
	}
	return svc, cfg.Output
}

func TestService_SyncAll(t *testing.T) {
	devices := []Device{
		{Name: "core-switch", Host: "192.168.88.1", Username: "admin", Type: "mikrotik"},
	}

	t.Run("Writes Snapshots", func(t *testing.T) {
		conn := &scriptedConn{replies: coreSwitchReplies()}
		svc, output := newTestService(t, conn)

		results := svc.SyncAll(context.Background(), devices, "")
		require.Len(t, results, 1)
		require.NoError(t, results[0].Err)
		assert.True(t, conn.closed)

		data, err := os.ReadFile(filepath.Join(output, "core-switch.json"))
		require.NoError(t, err)

		var cfg DeviceConfig
		require.NoError(t, json.Unmarshal(data, &cfg))
		assert.Equal(t, "core-switch", cfg.Identity)
		require.Len(t, cfg.Interfaces, 2)
		assert.True(t, cfg.Interfaces[0].Running)
		assert.Equal(t, "10", cfg.VLANs[0].VLANID)
		assert.Equal(t, "192.168.88.1/24", cfg.IPAddresses[0].Address)

		text, err := os.ReadFile(filepath.Join(output, "core-switch.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(text), "Identity: core-switch")
		assert.Contains(t, string(text), "ether1: ether [UP]")
		assert.Contains(t, string(text), "VLAN 10: vlan10-mgmt on bridge")
		assert.Contains(t, string(text), "input: accept - allow ping")
	})

	t.Run("Device Filter", func(t *testing.T) {
		svc, _ := newTestService(t, &scriptedConn{replies: coreSwitchReplies()})

		results := svc.SyncAll(context.Background(), devices, "other-switch")
		assert.Empty(t, results)
	})

	t.Run("Unreachable Device Is Reported Not Fatal", func(t *testing.T) {
		svc, output := newTestService(t, nil)

		results := svc.SyncAll(context.Background(), devices, "")
		require.Len(t, results, 1)
		assert.Error(t, results[0].Err)

		_, err := os.Stat(filepath.Join(output, "core-switch.json"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Pull Failure Mid Section", func(t *testing.T) {
		conn := &scriptedConn{replies: coreSwitchReplies(), failOn: "/ip/address/print"}
		svc, _ := newTestService(t, conn)

		results := svc.SyncAll(context.Background(), devices, "")
		require.Len(t, results, 1)
		assert.ErrorContains(t, results[0].Err, "ip addresses")
	})

	t.Run("Unsupported Device Type", func(t *testing.T) {
		svc, _ := newTestService(t, &scriptedConn{replies: coreSwitchReplies()})

		results := svc.SyncAll(context.Background(), []Device{{Name: "fw", Type: "cisco"}}, "")
		require.Len(t, results, 1)
		assert.ErrorContains(t, results[0].Err, "unsupported device type")
	})
}

func TestService_Upload(t *testing.T) {
	devices := []Device{{Name: "core-switch", Host: "192.168.88.1", Type: "mikrotik"}}

	t.Run("Uploads When Bucket Configured", func(t *testing.T) {
		store := new(mocks.Client)
		store.On("BucketExists", mock.Anything, "network-configs").Return(true, nil)
		store.On("PutObject", mock.Anything, "network-configs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		svc, _ := newTestService(t, &scriptedConn{replies: coreSwitchReplies()})
		svc.store = store
		svc.bucket = "network-configs"

		results := svc.SyncAll(context.Background(), devices, "")
		require.Len(t, results, 1)
		require.NoError(t, results[0].Err)
		assert.True(t, results[0].Uploaded)
		store.AssertExpectations(t)
	})

	t.Run("Creates Missing Bucket", func(t *testing.T) {
		store := new(mocks.Client)
		store.On("BucketExists", mock.Anything, "network-configs").Return(false, nil)
		store.On("MakeBucket", mock.Anything, "network-configs", mock.Anything).Return(nil)
		store.On("PutObject", mock.Anything, "network-configs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		svc, _ := newTestService(t, &scriptedConn{replies: coreSwitchReplies()})
		svc.store = store
		svc.bucket = "network-configs"

		results := svc.SyncAll(context.Background(), devices, "")
		require.NoError(t, results[0].Err)
		assert.True(t, results[0].Uploaded)
		store.AssertExpectations(t)
	})

	t.Run("Upload Failure Keeps Local Snapshot", func(t *testing.T) {
		store := new(mocks.Client)
		store.On("BucketExists", mock.Anything, "network-configs").Return(false, errors.New("storage down"))

		svc, output := newTestService(t, &scriptedConn{replies: coreSwitchReplies()})
		svc.store = store
		svc.bucket = "network-configs"

		results := svc.SyncAll(context.Background(), devices, "")
		require.NoError(t, results[0].Err)
		assert.False(t, results[0].Uploaded)

		_, err := os.Stat(filepath.Join(output, "core-switch.json"))
		assert.NoError(t, err)
	})
}

func TestLoadDevices(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "devices.json")
		content := `[{"name": "core-switch", "host": "192.168.88.1", "username": "admin", "password": "secret", "type": "mikrotik", "port": 8729}]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		devices, err := LoadDevices(path)
		require.NoError(t, err)
		require.Len(t, devices, 1)
		assert.Equal(t, "core-switch", devices[0].Name)
		assert.Equal(t, 8729, devices[0].Port)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadDevices(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
