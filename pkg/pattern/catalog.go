package pattern

import (
	"fmt"
	"strings"
)

type generator func(Config) (string, error)

var generators = map[Type]generator{
	Phone:        phone,
	Zip:          zip,
	Email:        fixed(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
	URL:          fixed(`https?://[^\s/$.?#][^\s]*`),
	UUID:         uuidPattern,
	Color:        color,
	CountryCode:  countryCode,
	SemVer:       fixed(`v?(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?`),
	SocialHandle: socialHandle,
	CreditCard:   creditCard,
	Slug:         fixed(`[a-z0-9]+(?:-[a-z0-9]+)*`),
	IPv4:         fixed(`(?:(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)\.){3}(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)`),
	Alphanumeric: fixed(`[a-zA-Z0-9]+`),
}

// Types lists every known generator in a stable order.
func Types() []Type {
	return []Type{
		Phone, Zip, Email, URL, UUID, Color, CountryCode,
		SemVer, SocialHandle, CreditCard, Slug, IPv4, Alphanumeric,
	}
}

func fixed(body string) generator {
	return func(Config) (string, error) { return body, nil }
}

var phoneByCountry = map[string]string{
	"":   `\+?[1-9]\d{1,14}`,
	"US": `(?:\+?1[-. ]?)?\(?[2-9]\d{2}\)?[-. ]?\d{3}[-. ]?\d{4}`,
	"CA": `(?:\+?1[-. ]?)?\(?[2-9]\d{2}\)?[-. ]?\d{3}[-. ]?\d{4}`,
	"GB": `(?:\+44\s?7\d{3}|07\d{3})\s?\d{3}\s?\d{3}`,
	"IN": `(?:\+91[-\s]?)?[6-9]\d{9}`,
	"DE": `(?:\+49\s?|0)[1-9](?:\s?\d){6,13}`,
	"FR": `(?:\+33\s?|0)[1-9](?:[\s.-]?\d{2}){4}`,
	"AU": `(?:\+61\s?|0)4\d{2}\s?\d{3}\s?\d{3}`,
}

var zipByCountry = map[string]string{
	"":   `\d{5,6}`,
	"US": `\d{5}(?:-\d{4})?`,
	"CA": `[A-Za-z]\d[A-Za-z][ -]?\d[A-Za-z]\d`,
	"GB": `[A-Za-z]{1,2}\d[A-Za-z\d]?\s?\d[A-Za-z]{2}`,
	"IN": `[1-9]\d{5}`,
	"DE": `\d{5}`,
	"FR": `\d{5}`,
	"AU": `\d{4}`,
}

func phone(cfg Config) (string, error) { return byCountry(phoneByCountry, cfg) }

func zip(cfg Config) (string, error) { return byCountry(zipByCountry, cfg) }

func byCountry(table map[string]string, cfg Config) (string, error) {
	country := strings.ToUpper(strings.TrimSpace(cfg.Country))
	if country == "UK" {
		country = "GB"
	}
	body, ok := table[country]
	if !ok {
		return "", fmt.Errorf("%w: %s country %q", ErrUnsupportedParameter, cfg.Type, cfg.Country)
	}
	return body, nil
}

func uuidPattern(cfg Config) (string, error) {
	const hex = `[0-9a-fA-F]`
	switch {
	case cfg.Version == 0:
		return hex + `{8}-` + hex + `{4}-` + hex + `{4}-` + hex + `{4}-` + hex + `{12}`, nil
	case cfg.Version >= 1 && cfg.Version <= 5:
		return fmt.Sprintf(`%[1]s{8}-%[1]s{4}-%[2]d%[1]s{3}-[89abAB]%[1]s{3}-%[1]s{12}`, hex, cfg.Version), nil
	default:
		return "", fmt.Errorf("%w: uuid version %d", ErrUnsupportedParameter, cfg.Version)
	}
}

const (
	hexColor = `#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})`
	rgbColor = `rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*(?:,\s*(?:0|1|0?\.\d+)\s*)?\)`
	hslColor = `hsla?\(\s*\d{1,3}\s*,\s*\d{1,3}%\s*,\s*\d{1,3}%\s*(?:,\s*(?:0|1|0?\.\d+)\s*)?\)`
)

func color(cfg Config) (string, error) {
	switch strings.ToLower(cfg.ColorFormat) {
	case "", "hex":
		return hexColor, nil
	case "rgb":
		return rgbColor, nil
	case "hsl":
		return hslColor, nil
	case "any":
		return hexColor + "|" + rgbColor + "|" + hslColor, nil
	default:
		return "", fmt.Errorf("%w: color format %q", ErrUnsupportedParameter, cfg.ColorFormat)
	}
}

func countryCode(cfg Config) (string, error) {
	switch cfg.Alpha {
	case 0, 2:
		return `[A-Z]{2}`, nil
	case 3:
		return `[A-Z]{3}`, nil
	default:
		return "", fmt.Errorf("%w: country code alpha-%d", ErrUnsupportedParameter, cfg.Alpha)
	}
}

func socialHandle(cfg Config) (string, error) {
	switch strings.ToLower(cfg.Platform) {
	case "":
		return `@?[A-Za-z0-9_.]{1,30}`, nil
	case "twitter", "x":
		return `@?[A-Za-z0-9_]{1,15}`, nil
	case "instagram":
		return `@?[A-Za-z0-9._]{1,30}`, nil
	case "github":
		return `@?[A-Za-z0-9](?:[A-Za-z0-9-]{0,37}[A-Za-z0-9])?`, nil
	default:
		return "", fmt.Errorf("%w: social platform %q", ErrUnsupportedParameter, cfg.Platform)
	}
}

func creditCard(cfg Config) (string, error) {
	switch strings.ToLower(cfg.Brand) {
	case "", "any":
		return `(?:\d[ -]?){12,18}\d`, nil
	case "visa":
		return `4\d{12}(?:\d{3})?`, nil
	case "mastercard":
		return `5[1-5]\d{14}`, nil
	case "amex":
		return `3[47]\d{13}`, nil
	default:
		return "", fmt.Errorf("%w: card brand %q", ErrUnsupportedParameter, cfg.Brand)
	}
}
