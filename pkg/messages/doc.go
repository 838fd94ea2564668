// Package messages holds the localized default texts of validation errors.
//
// A Catalog maps a language to dotted keys ("validation.minLength") whose
// templates use %{name} placeholders filled from the error's parameters. The
// built-in catalog ships English, Spanish and German; more languages can be
// merged from YAML:
//
//	cat := messages.Default().Clone()
//	if err := cat.LoadFS(os.DirFS("."), "locales"); err != nil {
//	    return err
//	}
//	lang := cat.MatchAcceptLanguage(r.Header.Get("Accept-Language"))
//	msg, _ := cat.Translate(lang, "validation.minLength", map[string]any{"min": 3})
//
// Language negotiation uses golang.org/x/text/language, so "es-MX" resolves
// to "es" and unsupported requests fall back to the catalog's default.
package messages
