package patterns

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/rafabd1/LiteFinder/core/decoder"
)

// PatternConfig is one row of the detection catalog.
type PatternConfig struct {
	Name        string
	Regex       string
	Description string
	Category    string
	// Group is the capture group reported as the match; 0 reports the whole match.
	Group int
	// Decoder names the strategy applied to each match (see package decoder).
	Decoder string
}

// Labels written into findings. They are part of the persisted report format.
const (
	AWSAccessKey        = "AWS Access Key"
	GoogleAPIKey        = "Google API Key"
	SlackToken          = "Slack Token"
	AuthorizationBearer = "Authorization Bearer"
	BasicAuth           = "Basic Auth"
	PrivateKey          = "Private Key"
	FacebookAccessToken = "Facebook Access Token"
	GenericSecret       = "Generic Secret/Token/Password"
	HerokuUUID          = "Heroku-style UUID"
	HardcodedURL        = "Hardcoded URL"
	Base64EncodedString = "Base64 Encoded String"
	JWTToken            = "JWT Token"
	SuspiciousVariable  = "Suspicious Variable Names"
	InlineCommentSecret = "Inline Comments with Secrets"
	PossibleCredsFuzzy  = "possible_Creds Fuzzy"
)

// DefaultPatterns is ordered; findings are reported in this order.
var DefaultPatterns = []PatternConfig{
	{
		Name:        AWSAccessKey,
		Regex:       `AKIA[0-9A-Z]{16}`,
		Description: "AWS access key ID",
		Category:    "aws",
	},
	{
		Name:        GoogleAPIKey,
		Regex:       `AIza[0-9A-Za-z\-_]{35}`,
		Description: "Google Cloud API key",
		Category:    "gcp",
	},
	{
		Name:        SlackToken,
		Regex:       `xox[baprs]-[0-9a-zA-Z]{10,48}`,
		Description: "Slack bot, user, app or refresh token",
		Category:    "chat",
	},
	{
		Name:        AuthorizationBearer,
		Regex:       `Bearer\s+[a-zA-Z0-9\-._~+/]+=*`,
		Description: "HTTP Authorization Bearer credential",
		Category:    "auth",
	},
	{
		Name:        BasicAuth,
		Regex:       `Basic\s+[a-zA-Z0-9=:_+/\-]{5,100}`,
		Description: "HTTP Authorization Basic credential",
		Category:    "auth",
	},
	{
		Name:        PrivateKey,
		Regex:       `-----BEGIN[^\n]*?PRIVATE KEY-----`,
		Description: "PEM private key block header",
		Category:    "crypto",
	},
	{
		Name:        FacebookAccessToken,
		Regex:       `EAACEdEose0cBA[0-9A-Za-z]+`,
		Description: "Facebook long-lived access token",
		Category:    "social",
	},
	{
		Name:        GenericSecret,
		Regex:       `(?i)(?:secret|password|token|apikey|key)["'\s:=>]+["']?[a-zA-Z0-9\-_]{4,}`,
		Description: "Value assigned next to a secret, password, token or key name",
		Category:    "generic",
	},
	{
		Name:        HerokuUUID,
		Regex:       `[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}`,
		Description: "UUID-shaped identifier, the format of Heroku API keys",
		Category:    "generic",
	},
	{
		Name:        HardcodedURL,
		Regex:       `https?://[^\s"']+`,
		Description: "Absolute http(s) URL embedded in the source",
		Category:    "url",
	},
	{
		Name:        Base64EncodedString,
		Regex:       `[A-Za-z0-9+/]{20,}={0,2}`,
		Description: "Long base64 run, decoded to reveal its text",
		Category:    "encoding",
		Decoder:     decoder.NameBase64,
	},
	{
		Name:        JWTToken,
		Regex:       `eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`,
		Description: "JSON Web Token, header and payload decoded",
		Category:    "auth",
		Decoder:     decoder.NameJWT,
	},
	{
		Name:        SuspiciousVariable,
		Regex:       `(?:var|let|const)\s+([a-zA-Z0-9_]*(?:token|secret|api|key)[a-zA-Z0-9_]*)`,
		Description: "Variable declaration whose name mentions a credential",
		Category:    "code",
		Group:       1,
	},
	{
		Name:        InlineCommentSecret,
		Regex:       `(?://|#)[^\n]*?(?:apikey|token|auth|key|secret)[^\n]*`,
		Description: "Comment line mentioning credentials",
		Category:    "code",
	},
	{
		Name:        PossibleCredsFuzzy,
		Regex:       `(?i)(?:password|pwd|passwd|secret)\s*[:=]\s*[^\s,;)]+`,
		Description: "Loose password or secret assignment",
		Category:    "generic",
	},
}

// Rules returns a copy of the catalog in detection order.
func Rules() []PatternConfig {
	rules := make([]PatternConfig, len(DefaultPatterns))
	copy(rules, DefaultPatterns)
	return rules
}

type CompiledPattern struct {
	Name        string
	Description string
	Category    string
	Group       int
	Regex       *regexp.Regexp
	Decode      decoder.Func
}

// Submatch returns the reported portion of a FindAllStringSubmatch result.
func (cp *CompiledPattern) Submatch(match []string) string {
	if cp.Group > 0 && cp.Group < len(match) {
		return match[cp.Group]
	}
	return match[0]
}

type PatternManager struct {
	compiledPatterns []*CompiledPattern
	mu               sync.RWMutex
}

/*
   Compiles the whole catalog. A rule that does not compile or references an
   unknown decoder is a programming error and fails construction.
*/
func NewPatternManager() (*PatternManager, error) {
	pm := &PatternManager{}
	if err := pm.LoadPatterns(DefaultPatterns); err != nil {
		return nil, err
	}
	return pm, nil
}

func (pm *PatternManager) LoadPatterns(configs []PatternConfig) error {
	compiled := make([]*CompiledPattern, 0, len(configs))
	seen := make(map[string]bool, len(configs))

	for _, config := range configs {
		if seen[config.Name] {
			return fmt.Errorf("duplicate pattern label %q", config.Name)
		}
		seen[config.Name] = true

		re, err := regexp.Compile(config.Regex)
		if err != nil {
			return fmt.Errorf("failed to compile regex %q: %w", config.Name, err)
		}
		if config.Group > re.NumSubexp() {
			return fmt.Errorf("pattern %q reports group %d but has %d", config.Name, config.Group, re.NumSubexp())
		}
		if !decoder.Known(config.Decoder) {
			return fmt.Errorf("pattern %q uses unknown decoder %q", config.Name, config.Decoder)
		}

		compiled = append(compiled, &CompiledPattern{
			Name:        config.Name,
			Description: config.Description,
			Category:    config.Category,
			Group:       config.Group,
			Regex:       re,
			Decode:      decoder.Lookup(config.Decoder),
		})
	}

	pm.mu.Lock()
	pm.compiledPatterns = compiled
	pm.mu.Unlock()

	return nil
}

/*
   Keeps only the patterns whose category is in include, or drops those in
   exclude. Passing both is rejected, matching the CLI flags.
*/
func (pm *PatternManager) Filter(includeCategories, excludeCategories []string) error {
	if len(includeCategories) > 0 && len(excludeCategories) > 0 {
		return fmt.Errorf("include and exclude categories cannot be used together")
	}

	includeMap := make(map[string]bool, len(includeCategories))
	for _, cat := range includeCategories {
		includeMap[cat] = true
	}
	excludeMap := make(map[string]bool, len(excludeCategories))
	for _, cat := range excludeCategories {
		excludeMap[cat] = true
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	kept := pm.compiledPatterns[:0:0]
	for _, cp := range pm.compiledPatterns {
		if len(includeMap) > 0 && !includeMap[cp.Category] {
			continue
		}
		if excludeMap[cp.Category] {
			continue
		}
		kept = append(kept, cp)
	}
	pm.compiledPatterns = kept

	return nil
}

func (pm *PatternManager) GetPatternCount() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.compiledPatterns)
}

// GetCompiledPatterns returns the patterns in catalog order.
func (pm *PatternManager) GetCompiledPatterns() []*CompiledPattern {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	patterns := make([]*CompiledPattern, len(pm.compiledPatterns))
	copy(patterns, pm.compiledPatterns)
	return patterns
}

// Categories returns the distinct categories of the catalog in first-seen order.
func Categories() []string {
	var categories []string
	seen := make(map[string]bool)
	for _, p := range DefaultPatterns {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}
