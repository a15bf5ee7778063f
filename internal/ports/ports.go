// Package ports answers one question: is something already listening on a
// local TCP port? The answer is advisory — a probe and a later bind are not
// atomic — but it is the dedup mechanism that keeps a second dev server from
// being launched on a port that already has one.
package ports

import (
	"fmt"
	"net"
	"strconv"
	"time"

	gnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// probeTimeout bounds each connection attempt. Loopback connects either
// succeed or are refused almost immediately, so this only matters on hosts
// with firewall rules that drop loopback traffic.
const probeTimeout = 200 * time.Millisecond

// InUse reports whether a process is accepting TCP connections on the given
// port, checking IPv4 (127.0.0.1) and IPv6 (::1) loopback independently.
// Only a successful connect counts as in use; refused connections, missing
// address families, and every other socket error mean "not in use" for that
// family. Errors are never surfaced to the caller.
func InUse(port int) bool {
	addrs := []string{
		net.JoinHostPort("127.0.0.1", strconv.Itoa(port)),
		net.JoinHostPort("::1", strconv.Itoa(port)),
	}
	for _, addr := range addrs {
		conn, err := net.DialTimeout("tcp", addr, probeTimeout)
		if err == nil {
			conn.Close()
			return true
		}
	}
	return false
}

// Listener identifies the process bound to a port, when it can be resolved.
type Listener struct {
	PID  int32
	Name string
}

// FindListener resolves which process is listening on the given port. It is
// used purely for diagnostics ("presumed already running" messages, doctor
// output); resolution can fail on platforms or permission levels where
// connection tables are not readable, in which case ok is false and the
// caller falls back to a less specific message.
func FindListener(port int) (Listener, bool) {
	conns, err := gnet.Connections("tcp")
	if err != nil {
		return Listener{}, false
	}
	for _, c := range conns {
		if c.Status != "LISTEN" || c.Laddr.Port != uint32(port) || c.Pid == 0 {
			continue
		}
		l := Listener{PID: c.Pid}
		if p, err := process.NewProcess(c.Pid); err == nil {
			if name, err := p.Name(); err == nil {
				l.Name = name
			}
		}
		return l, true
	}
	return Listener{}, false
}

// Describe returns a human-readable line for diagnostics.
func (l Listener) Describe() string {
	if l.Name != "" {
		return fmt.Sprintf("%s (pid %d)", l.Name, l.PID)
	}
	return fmt.Sprintf("pid %d", l.PID)
}
