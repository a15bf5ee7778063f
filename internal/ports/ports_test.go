package ports

import (
	"net"
	"os"
	"testing"
)

func TestInUseIPv4(t *testing.T) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to get a test listener: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	if !InUse(port) {
		t.Errorf("InUse(%d) = false with an IPv4 listener bound", port)
	}

	ln.Close()
	if InUse(port) {
		t.Errorf("InUse(%d) = true after the listener closed", port)
	}
}

func TestInUseIPv6(t *testing.T) {
	ln, err := net.Listen("tcp6", "[::1]:0")
	if err != nil {
		t.Skipf("IPv6 loopback unavailable: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	if !InUse(port) {
		t.Errorf("InUse(%d) = false with an IPv6 listener bound", port)
	}

	ln.Close()
	if InUse(port) {
		t.Errorf("InUse(%d) = true after the listener closed", port)
	}
}

func TestInUseFreePort(t *testing.T) {
	// Grab a port the system considers free, then release it.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	if InUse(port) {
		t.Errorf("InUse(%d) = true for a released port", port)
	}
}

func TestFindListener(t *testing.T) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	l, ok := FindListener(port)
	if !ok {
		// Connection tables are not readable everywhere (containers,
		// restricted permissions); resolution failing is an accepted outcome.
		t.Skip("connection table not readable on this host")
	}
	if int(l.PID) != os.Getpid() {
		t.Errorf("FindListener(%d).PID = %d; want %d", port, l.PID, os.Getpid())
	}
	if l.Describe() == "" {
		t.Error("Describe() returned an empty string")
	}
}
