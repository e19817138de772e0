package service

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"uasz.sn/utilisateursapi/pkg/apperror"
)

const (
	emailDomain   = "zig.univ.sn"
	emailSuffixes = 100
	emailAttempts = 5
)

// generateEmail builds nom + initial of prenom + initial of nom + n.
// Accents are folded and anything outside [a-z0-9] is dropped.
func generateEmail(nom, prenom string, suffix int) string {
	n := fold(nom)
	p := fold(prenom)
	return fmt.Sprintf("%s%s%s%d@%s", n, initial(p), initial(n), suffix, emailDomain)
}

// checkEmailSource rejects a nom with nothing left once folded to [a-z0-9],
// since the generated address would have no local name.
func checkEmailSource(nom string) error {
	if fold(nom) == "" {
		return apperror.Validation(resource, "Le nom %q ne contient aucun caractère utilisable pour générer l'email", nom)
	}
	return nil
}

func initial(s string) string {
	if s == "" {
		return ""
	}
	return s[:1]
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
