// Package main generates the development CA and the stub server's TLS
// certificate, writing them under the "certs" directory. An existing CA in
// that directory is reused so that clients keep trusting it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atinyakov/taletrail/internal/certgen"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("certgen", flag.ContinueOnError)
	fs.SetOutput(out)
	dir := fs.String("dir", "certs", "output directory")
	hosts := fs.String("hosts", "localhost,127.0.0.1", "comma-separated server host names and IPs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	caCertPath := filepath.Join(*dir, "ca.crt")
	caKeyPath := filepath.Join(*dir, "ca.key")

	if _, err := os.Stat(caCertPath); errors.Is(err, os.ErrNotExist) {
		certPEM, keyPEM, err := certgen.GenerateCA("TaleTrail Dev CA", 10*365*24*time.Hour)
		if err != nil {
			return fmt.Errorf("generate CA: %w", err)
		}
		if err := certgen.WritePair(*dir, "ca", certPEM, keyPEM); err != nil {
			return err
		}
		fmt.Fprintf(out, "CA written to %s\n", caCertPath)
	}

	caCert, caKey, err := certgen.LoadCACredentials(caCertPath, caKeyPath)
	if err != nil {
		return err
	}

	var names []string
	for _, h := range strings.Split(*hosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			names = append(names, h)
		}
	}
	certPEM, keyPEM, err := certgen.GenerateServerCertificate(names, caCert, caKey)
	if err != nil {
		return fmt.Errorf("generate server certificate: %w", err)
	}
	if err := certgen.WritePair(*dir, "server", certPEM, keyPEM); err != nil {
		return err
	}

	fmt.Fprintf(out, "Server certificate for %s written to %s\n", strings.Join(names, ", "), *dir)
	return nil
}
