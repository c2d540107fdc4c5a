// internal/capability/commerce/shopify.go
package commerce

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"venture-agents/internal/common/config"
	commonerrors "venture-agents/internal/common/errors"
	commonhttp "venture-agents/internal/common/http"
	"venture-agents/internal/common/logger"
)

// AccessToken is the credential returned by the OAuth code exchange.
type AccessToken struct {
	Token  string   `json:"access_token"`
	Scopes []string `json:"scopes"`
	Shop   string   `json:"shop"`
}

// ShopifyClient handles the storefront OAuth install flow: authorize
// URL construction, callback HMAC verification, and the code-for-token
// exchange.
type ShopifyClient struct {
	apiKey    string
	apiSecret string
	scopes    string
	client    *commonhttp.Client
	logger    logger.Logger

	// tokenURL builds the access-token endpoint for a shop. Overridable
	// in tests.
	tokenURL func(shop string) string
}

func NewShopifyClient(cfg config.CommerceConfig, log logger.Logger) *ShopifyClient {
	return &ShopifyClient{
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		scopes:    cfg.Scopes,
		client:    commonhttp.NewClient(30 * time.Second),
		logger:    log.With(map[string]interface{}{"capability": "commerce"}),
		tokenURL: func(shop string) string {
			return fmt.Sprintf("https://%s/admin/oauth/access_token", shop)
		},
	}
}

// AuthorizeURL builds the merchant install redirect for the given shop
// domain. A scheme prefix on the shop value is tolerated and stripped.
func (c *ShopifyClient) AuthorizeURL(shop, redirectURI, state string) string {
	shop = NormalizeShop(shop)

	params := url.Values{}
	params.Add("client_id", c.apiKey)
	params.Add("scope", c.scopes)
	params.Add("redirect_uri", redirectURI)
	params.Add("state", state)

	return fmt.Sprintf("https://%s/admin/oauth/authorize?%s", shop, params.Encode())
}

// VerifyHMAC checks the callback query parameters against the shared
// secret per the Shopify OAuth spec: drop hmac and signature, sort the
// remaining pairs lexicographically, and compare digests in constant
// time.
func (c *ShopifyClient) VerifyHMAC(query url.Values) bool {
	provided := query.Get("hmac")
	if provided == "" {
		return false
	}

	var pairs []string
	for key, values := range query {
		if key == "hmac" || key == "signature" {
			continue
		}
		for _, value := range values {
			pairs = append(pairs, key+"="+value)
		}
	}
	sort.Strings(pairs)
	message := strings.Join(pairs, "&")

	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(message))
	digest := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(digest), []byte(provided))
}

// ExchangeCode trades the callback code for a permanent access token.
func (c *ShopifyClient) ExchangeCode(ctx context.Context, shop, code string) (AccessToken, error) {
	shop = NormalizeShop(shop)

	body, _ := json.Marshal(map[string]string{
		"client_id":     c.apiKey,
		"client_secret": c.apiSecret,
		"code":          code,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.tokenURL(shop), strings.NewReader(string(body)))
	if err != nil {
		return AccessToken{}, commonerrors.NewCommerceAuthError(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return AccessToken{}, commonerrors.NewCommerceAuthError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AccessToken{}, commonerrors.NewCommerceAuthError(fmt.Sprintf("token exchange returned %d", resp.StatusCode))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		Scope       string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return AccessToken{}, commonerrors.NewCommerceAuthError(err.Error())
	}
	if payload.AccessToken == "" {
		return AccessToken{}, commonerrors.NewCommerceAuthError("no access_token in response")
	}

	var scopes []string
	if payload.Scope != "" {
		scopes = strings.Split(payload.Scope, ",")
	}

	c.logger.Info("access token issued", map[string]interface{}{
		"shop":   shop,
		"scopes": scopes,
	})

	return AccessToken{Token: payload.AccessToken, Scopes: scopes, Shop: shop}, nil
}

// NormalizeShop strips a scheme prefix from a shop domain.
func NormalizeShop(shop string) string {
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	return strings.TrimSuffix(shop, "/")
}
