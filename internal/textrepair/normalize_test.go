package textrepair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \n\n  \t"))
}

func TestNormalize_LineEndingsAndNBSP(t *testing.T) {
	in := "Pierwsze zdanie jest gotowe.\r\nDrugie zdanie też."
	out := Normalize(in)
	assert.NotContains(t, out, "\r")
	assert.NotContains(t, out, " ")
	assert.Contains(t, out, "Drugie zdanie też.")
}

func TestNormalize_Dehyphenation(t *testing.T) {
	out := Normalize("wyjazdy zagra-\nniczne wymagają zgody.")
	assert.Equal(t, "wyjazdy zagraniczne wymagają zgody.", out)
}

func TestNormalize_LetterRunReassembly(t *testing.T) {
	// Extractor split the word ending across single-letter lines.
	out := Normalize("Wyjazdy zagraniczn\ne\nwymagają zgody.")
	assert.Equal(t, "Wyjazdy zagraniczne\nwymagają zgody.", out)
}

func TestNormalize_LetterRunKeptWhenNotMergeable(t *testing.T) {
	// Preceding line ends a sentence, so the token is not a split word.
	out := Normalize("Koniec zdania.\no\nk")
	assert.Contains(t, out, "Koniec zdania.")
	assert.Contains(t, out, "ok")
	assert.NotContains(t, out, "zdania.ok")
}

func TestNormalize_SuffixReattachment(t *testing.T) {
	out := Normalize("Delegacje krajo\nwe\nrozliczamy w terminie.")
	assert.Equal(t, "Delegacje krajowe\nrozliczamy w terminie.", out)
}

func TestNormalize_SoftWrapJoined(t *testing.T) {
	// Blank line between two prose fragments of one sentence is an
	// extraction artifact, not a paragraph break.
	out := Normalize("pierwsza część zdania\n\ndruga część zdania.")
	assert.Equal(t, "pierwsza część zdania druga część zdania.", out)
}

func TestNormalize_HardBreakAfterSentence(t *testing.T) {
	out := Normalize("pierwszy akapit kończy się tutaj.\n\ndrugi akapit zaczyna się tutaj.")
	assert.Equal(t, "pierwszy akapit kończy się tutaj.\n\ndrugi akapit zaczyna się tutaj.", out)
}

func TestNormalize_StructuralLinesPreserved(t *testing.T) {
	in := "Zasady delegacji:\n- pierwsza zasada obowiązuje wszystkich\n- druga zasada obowiązuje kierowników\n1. krok pierwszy"
	out := Normalize(in)
	assert.Equal(t, in, out)
}

func TestNormalize_CollapsesBlankRuns(t *testing.T) {
	out := Normalize("pierwszy akapit się kończy.\n\n\n\n\ndrugi akapit się zaczyna.")
	assert.Equal(t, "pierwszy akapit się kończy.\n\ndrugi akapit się zaczyna.", out)
}

func TestNormalize_ProseLinesJoined(t *testing.T) {
	// Wrapped prose without blank lines becomes one paragraph.
	out := Normalize("pracownik składa wniosek\nw systemie kadrowym\ni czeka na akceptację.")
	assert.Equal(t, "pracownik składa wniosek w systemie kadrowym i czeka na akceptację.", out)
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Podró\nż\ne\nsłużbowe rozliczamy w ciągu 14 dni.",
		"Zasady:\n- punkt pierwszy\n- punkt drugi\n\nwłaściwy akapit opisu\nciągnie się dalej.",
		"wyjazdy zagra-\nniczne wymagają zgody przełożonego.\n\n\nNowy rozdział",
		"Delegacje krajo\nwe\nrozliczamy w terminie.",
		"zwykły tekst bez żadnych artefaktów.",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input: %q", in)
	}
}
