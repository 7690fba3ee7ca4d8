// Package wbem is the supported entry point for talking to a WBEM
// server: it fronts internal/wclient so callers outside this module
// never import an internal package directly.
package wbem

import (
	"fmt"
	"time"

	"github.com/wbemix/gowbem/internal/retry"
	"github.com/wbemix/gowbem/internal/wclient"
	"github.com/wbemix/gowbem/internal/wconfig"
	"github.com/wbemix/gowbem/internal/wlog"
)

// Config configures a Client. It mirrors wclient.Config field for
// field; the indirection exists so this package's public surface
// never aliases an internal type directly.
type Config struct {
	Host             string
	Port             int
	Scheme           string // "http" or "https"; defaults "https"
	Namespace        string
	Username         string
	Password         string
	CABundlePath     string
	InsecureSkipTLS  bool
	ClientCertPath   string
	ClientKeyPath    string
	OperationTimeout time.Duration
	RetryPolicy      retry.Policy
	Logger           *wlog.Logger
}

// Client is a connection to one WBEM server. Every intrinsic and
// extrinsic operation (GetInstance, EnumerateClasses, InvokeMethod,
// the Open/Pull enumeration pair, ...) is promoted from the embedded
// connection, so Client has the class, qualifier and instance methods
// of internal/repository.Repository plus the read/association/query/
// pull operations that interface doesn't need. It does not have the
// interface's namespace methods (Namespaces, CreateNamespace,
// DeleteNamespace), so it does not itself satisfy Repository.
type Client struct {
	*wclient.Connection
}

// Dial opens a connection built directly from cfg.
func Dial(cfg Config) (*Client, error) {
	conn, err := wclient.NewConnection(wclient.Config{
		Host:             cfg.Host,
		Port:             cfg.Port,
		Scheme:           cfg.Scheme,
		Namespace:        cfg.Namespace,
		Username:         cfg.Username,
		Password:         cfg.Password,
		CABundlePath:     cfg.CABundlePath,
		InsecureSkipTLS:  cfg.InsecureSkipTLS,
		ClientCertPath:   cfg.ClientCertPath,
		ClientKeyPath:    cfg.ClientKeyPath,
		OperationTimeout: cfg.OperationTimeout,
		RetryPolicy:      cfg.RetryPolicy,
		Logger:           cfg.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Client{Connection: conn}, nil
}

// DialProfile opens a connection from a named profile loaded via
// internal/wconfig, with password supplied out of band (profiles
// carry a CredentialRef, never a literal password — spec.md §4.D
// EXPANSION).
func DialProfile(file *wconfig.File, profileName, password string) (*Client, error) {
	p, err := file.Profile(profileName)
	if err != nil {
		return nil, fmt.Errorf("wbem: %w", err)
	}
	return Dial(Config{
		Host:             p.Host,
		Port:             p.Port,
		Scheme:           p.Scheme,
		Namespace:        p.Namespace,
		Username:         p.Username,
		Password:         password,
		CABundlePath:     p.CABundlePath,
		InsecureSkipTLS:  p.InsecureSkipTLS,
		OperationTimeout: p.OperationTimeout,
	})
}
