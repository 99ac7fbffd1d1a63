package internal

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"pay24/entity"
)

const (
	productionDomain = "https://admin.24-pay.eu"
	stagingDomain    = "https://doxxsl-staging.24-pay.eu"
	mediaBaseDomain  = "http://icons.24-pay.sk"

	installPath     = "/pay_gate/install"
	checkPath       = "/pay_gate/check"
	gatewayBasePath = "/pay_gate/paygt"
)

// GatewayClient performs the outbound calls to the gateway server and
// composes its URLs. Every call is a single synchronous attempt; retry
// policy is the caller's business.
type GatewayClient struct {
	creds  entity.Credentials
	signer *SignGenerator
	domain string
	http   *resty.Client
}

// NewGatewayClient builds a client for the given environment. The
// staging gateway runs with a self-signed certificate, so certificate
// verification is disabled there and only there.
func NewGatewayClient(creds entity.Credentials, staging bool) *GatewayClient {
	domain := productionDomain
	httpClient := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/x-www-form-urlencoded")
	if staging {
		domain = stagingDomain
		httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &GatewayClient{
		creds:  creds,
		signer: NewSignGenerator(creds),
		domain: domain,
		http:   httpClient,
	}
}

// CheckSignature asks the server to verify a signature generated from
// the configured credentials. It returns true only when the server's
// raw response body is exactly "OK"; any other body means the server
// refused the sign. Transport failures surface as ErrConnectivity.
func (c *GatewayClient) CheckSignature(ctx context.Context) (bool, error) {
	sign, err := c.signer.SignMessage("Check sign text for MID " + c.creds.Mid())
	if err != nil {
		return false, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"CHECKSUM": sign,
			"MID":      c.creds.Mid(),
		}).
		Post(c.CheckURL())
	if err != nil {
		return false, fmt.Errorf("%w: check endpoint: %v", entity.ErrConnectivity, err)
	}

	return string(resp.Body()) == "OK", nil
}

// ListAvailableGateways fetches the gateway IDs enabled for this
// merchant. The server answers with a JSON array of ID strings; a JSON
// null decodes to an empty list, anything that is not JSON is
// ErrProtocol.
func (c *GatewayClient) ListAvailableGateways(ctx context.Context) ([]string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"ESHOP_ID": c.creds.EshopID(),
			"MID":      c.creds.Mid(),
		}).
		Post(c.InstallURL())
	if err != nil {
		return nil, fmt.Errorf("%w: install endpoint: %v", entity.ErrConnectivity, err)
	}

	var ids []string
	if err := json.Unmarshal(resp.Body(), &ids); err != nil {
		return nil, fmt.Errorf("%w: install endpoint answered %q", entity.ErrProtocol, truncate(resp.Body(), 120))
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// InstallURL is the capability discovery endpoint.
func (c *GatewayClient) InstallURL() string {
	return c.domain + installPath
}

// CheckURL is the signature self-check endpoint.
func (c *GatewayClient) CheckURL() string {
	return c.domain + checkPath
}

// RequestURL composes the payment form submission endpoint, scoped to
// one gateway ID, or the universal endpoint when the ID is empty.
func (c *GatewayClient) RequestURL(gatewayID string) string {
	if gatewayID == "" {
		return c.domain + gatewayBasePath
	}
	return c.domain + gatewayBasePath + "/" + gatewayID
}

// GatewayIconURL composes the media URL of a gateway's icon. No
// network call.
func (c *GatewayClient) GatewayIconURL(gatewayID string) string {
	return mediaBaseDomain + "/images/gateway_" + gatewayID + ".png"
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
