package wclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/wbemix/gowbem/internal/retry"
	"github.com/wbemix/gowbem/internal/werrors"
	"github.com/wbemix/gowbem/internal/wlog"
)

// Config configures a Connection (spec.md §4.D: inputs, auth & TLS).
type Config struct {
	Host             string
	Port             int
	Scheme           string // "http" or "https"; defaults "https"
	Namespace        string
	Username         string
	Password         string
	CABundlePath     string // "" uses the OS default trust store
	InsecureSkipTLS  bool
	ClientCertPath   string
	ClientKeyPath    string
	OperationTimeout time.Duration // default 30s (spec.md §5)
	RetryPolicy      retry.Policy
	Logger           *wlog.Logger // nil defaults to a no-op logger
}

// Connection is a single CIM-XML/HTTP connection to a WBEM server.
// It is thread-compatible but not thread-safe: one goroutine at a time
// (spec.md §5).
type Connection struct {
	id         uuid.UUID
	baseURL    string
	namespace  string
	username   string
	password   string
	timeout    time.Duration
	retryPolicy retry.Policy
	logger     wlog.Logger
	httpClient *http.Client
	recorders     []RecorderHook
	messageSeq    int64
	pulls         map[string]*pullState
	pullSupported *bool
}

// NewConnection builds a Connection from cfg, constructing the TLS
// configuration and HTTP client (spec.md §4.D "Authentication & TLS").
func NewConnection(cfg Config) (*Connection, error) {
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "https"
	}
	timeout := cfg.OperationTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	logger := wlog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	transport := &http.Transport{}
	if scheme == "https" {
		tlsConfig, err := buildTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		transport.TLSClientConfig = tlsConfig
	}

	return &Connection{
		id:          uuid.New(),
		baseURL:     fmt.Sprintf("%s://%s:%d/cimom", scheme, cfg.Host, cfg.Port),
		namespace:   cfg.Namespace,
		username:    cfg.Username,
		password:    cfg.Password,
		timeout:     timeout,
		retryPolicy: cfg.RetryPolicy,
		logger:      logger,
		httpClient:  &http.Client{Transport: transport},
		pulls:       make(map[string]*pullState),
	}, nil
}

func buildTLSConfig(cfg Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{InsecureSkipVerify: cfg.InsecureSkipTLS}
	if cfg.CABundlePath != "" {
		pem, err := os.ReadFile(cfg.CABundlePath)
		if err != nil {
			return nil, fmt.Errorf("wclient: reading CA bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("wclient: no certificates found in %s", cfg.CABundlePath)
		}
		tlsConfig.RootCAs = pool
	}
	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("wclient: loading client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	return tlsConfig, nil
}

// RecorderHook observes one completed operation. Hooks must not panic;
// a panicking hook is caught, logged, and dropped (spec.md §4.D).
type RecorderHook func(RecordedOperation)

// RecordedOperation is what a recorder hook observes.
type RecordedOperation struct {
	ConnectionID string
	Method       string
	Namespace    string
	RequestBody  []byte
	ResponseBody []byte
	Err          error
}

// AddRecorder registers a recorder hook.
func (c *Connection) AddRecorder(h RecorderHook) { c.recorders = append(c.recorders, h) }

func (c *Connection) notifyRecorders(op RecordedOperation) {
	for _, h := range c.recorders {
		c.invokeRecorder(h, op)
	}
}

func (c *Connection) invokeRecorder(h RecorderHook, op RecordedOperation) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.HookPanic(r)
		}
	}()
	h(op)
}

func (c *Connection) nextMessageID() string {
	n := atomic.AddInt64(&c.messageSeq, 1)
	return fmt.Sprintf("%d", n)
}

// idempotentMethods are retried per spec.md §4.D; every other intrinsic
// (CreateInstance, ModifyInstance, DeleteInstance, CreateClass,
// ModifyClass, DeleteClass, SetQualifier, DeleteQualifier,
// CloseEnumeration) is never retried. The extrinsic InvokeMethod does
// not go through intrinsicCall and is never retried either.
var idempotentMethods = map[string]bool{
	"GetClass": true, "GetInstance": true, "GetQualifier": true,
	"EnumerateClasses": true, "EnumerateClassNames": true,
	"EnumerateInstances": true, "EnumerateInstanceNames": true,
	"EnumerateQualifiers": true,
	"AssociatorNames": true, "Associators": true,
	"ReferenceNames": true, "References": true,
	"ExecQuery": true,
	"OpenEnumerateInstances": true, "OpenEnumerateInstanceNames": true,
	"PullInstancesWithPath": true, "PullInstancePaths": true,
}

// intrinsicCall sends one IMETHODCALL, applying the retry policy when
// method is idempotent, and returns the decoded response (which may
// itself carry a CIMError — that is not a Go error from this
// function's point of view; callers translate it).
func (c *Connection) intrinsicCall(ctx context.Context, method, namespace string, params []IParam) (*MethodResponse, error) {
	if namespace == "" {
		namespace = c.namespace
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messageID := c.nextMessageID()
	reqBody := EncodeIMethodCall(messageID, method, namespace, params)

	var resp *MethodResponse
	attempt := 0
	op := func() error {
		attempt++
		var err error
		resp, err = c.doHTTP(ctx, method, namespace, namespace, reqBody)
		c.logger.OperationAttempt(method, namespace, messageID, attempt, err)
		return err
	}

	var err error
	if idempotentMethods[method] {
		err = retry.Do(ctx, c.retryPolicy, op)
	} else {
		err = op()
	}
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		err = &werrors.TimeoutError{Operation: method, Timeout: c.timeout}
	}
	return resp, err
}

func (c *Connection) doHTTP(ctx context.Context, method, namespace, cimObject string, reqBody []byte) (*MethodResponse, error) {
	bodyBytes, err := c.sendRequest(ctx, method, cimObject, reqBody)
	if err != nil {
		return nil, err
	}
	resp, err := DecodeMethodResponse(bytes.NewReader(bodyBytes), c.logger)
	c.notifyRecorders(RecordedOperation{ConnectionID: c.id.String(), Method: method, Namespace: namespace, RequestBody: reqBody, ResponseBody: bodyBytes, Err: err})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// sendRequest performs the HTTP round trip common to both the
// intrinsic (IMETHODCALL) and extrinsic (METHODCALL) envelopes,
// returning the raw response body for the caller to decode. Transport
// failures, 401s, and non-200 statuses are translated and recorded
// here so both envelope decoders share one error-translation point.
// cimObject is the target namespace (intrinsic calls) or object path
// (extrinsic InvokeMethod) sent as the CIMObject header (spec.md §6).
func (c *Connection) sendRequest(ctx context.Context, method, cimObject string, reqBody []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &werrors.ConnectionError{Host: c.baseURL, Err: err}
	}
	httpReq.Header.Set("Content-Type", `application/xml; charset="utf-8"`)
	httpReq.Header.Set("CIMOperation", "MethodCall")
	httpReq.Header.Set("CIMMethod", method)
	httpReq.Header.Set("CIMObject", cimObject)
	if c.username != "" {
		httpReq.SetBasicAuth(c.username, c.password)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		var connErr error = &werrors.ConnectionError{Host: c.baseURL, Err: err}
		var certErr *tls.CertificateVerificationError
		if errors.As(err, &certErr) {
			connErr = &werrors.AuthError{Host: c.baseURL, Reason: "TLS certificate verification failed", Err: err}
		}
		c.notifyRecorders(RecordedOperation{ConnectionID: c.id.String(), Method: method, Namespace: cimObject, RequestBody: reqBody, Err: connErr})
		return nil, connErr
	}
	defer httpResp.Body.Close()

	bodyBytes, _ := io.ReadAll(httpResp.Body)

	if httpResp.StatusCode == http.StatusUnauthorized && c.username != "" {
		// One retry with the same credentials before the 401 is reported.
		if body, gerr := httpReq.GetBody(); gerr == nil {
			retryReq := httpReq.Clone(ctx)
			retryReq.Body = body
			if retryResp, rerr := c.httpClient.Do(retryReq); rerr == nil {
				defer retryResp.Body.Close()
				httpResp = retryResp
				bodyBytes, _ = io.ReadAll(retryResp.Body)
			}
		}
	}
	if httpResp.StatusCode == http.StatusUnauthorized {
		reason := "HTTP 401 after Basic-auth retry"
		if c.username == "" {
			reason = "HTTP 401 with no credentials configured"
		}
		authErr := &werrors.AuthError{Host: c.baseURL, Reason: reason}
		c.notifyRecorders(RecordedOperation{ConnectionID: c.id.String(), Method: method, Namespace: cimObject, RequestBody: reqBody, ResponseBody: bodyBytes, Err: authErr})
		return nil, authErr
	}
	if httpResp.StatusCode != http.StatusOK {
		httpErr := &werrors.HTTPError{StatusCode: httpResp.StatusCode, Reason: httpResp.Status, BodyExcerpt: excerpt(bodyBytes)}
		c.notifyRecorders(RecordedOperation{ConnectionID: c.id.String(), Method: method, Namespace: cimObject, RequestBody: reqBody, ResponseBody: bodyBytes, Err: httpErr})
		return nil, httpErr
	}
	return bodyBytes, nil
}

func excerpt(b []byte) string {
	const max = 256
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
