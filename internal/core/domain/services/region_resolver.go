package services

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Region is a courier routing zone (wilaya).
type Region struct {
	Code int
	Name string
}

var wilayas = []Region{
	{1, "Adrar"}, {2, "Chlef"}, {3, "Laghouat"}, {4, "Oum El Bouaghi"},
	{5, "Batna"}, {6, "Béjaïa"}, {7, "Biskra"}, {8, "Béchar"},
	{9, "Blida"}, {10, "Bouira"}, {11, "Tamanrasset"}, {12, "Tébessa"},
	{13, "Tlemcen"}, {14, "Tiaret"}, {15, "Tizi Ouzou"}, {16, "Alger"},
	{17, "Djelfa"}, {18, "Jijel"}, {19, "Sétif"}, {20, "Saïda"},
	{21, "Skikda"}, {22, "Sidi Bel Abbès"}, {23, "Annaba"}, {24, "Guelma"},
	{25, "Constantine"}, {26, "Médéa"}, {27, "Mostaganem"}, {28, "M'Sila"},
	{29, "Mascara"}, {30, "Ouargla"}, {31, "Oran"}, {32, "El Bayadh"},
	{33, "Illizi"}, {34, "Bordj Bou Arréridj"}, {35, "Boumerdès"}, {36, "El Tarf"},
	{37, "Tindouf"}, {38, "Tissemsilt"}, {39, "El Oued"}, {40, "Khenchela"},
	{41, "Souk Ahras"}, {42, "Tipaza"}, {43, "Mila"}, {44, "Aïn Defla"},
	{45, "Naâma"}, {46, "Aïn Témouchent"}, {47, "Ghardaïa"}, {48, "Relizane"},
}

// Spellings seen in customer input that the canonical names do not cover.
var regionAliases = map[string]int{
	"algiers":     16,
	"souka ahras": 41,
	"tipasa":      42,
}

// RegionResolver maps region names to courier codes. It is immutable and
// safe for concurrent use.
type RegionResolver struct {
	codes map[string]int
}

// NewRegionResolver builds the lookup table from the 48 wilayas.
func NewRegionResolver() *RegionResolver {
	codes := make(map[string]int, len(wilayas)+len(regionAliases))
	for _, w := range wilayas {
		codes[normalizeRegion(w.Name)] = w.Code
	}
	for alias, code := range regionAliases {
		codes[alias] = code
	}
	return &RegionResolver{codes: codes}
}

// Resolve returns the courier code for name. Matching ignores case,
// surrounding and repeated whitespace, accents, apostrophes and hyphens.
// A bare wilaya number of one or two digits ("16", "05") is accepted too;
// signs and longer numbers are not. ok is false for empty or unknown input.
func (r *RegionResolver) Resolve(name string) (code int, ok bool) {
	if n, isNumber := wilayaNumber(strings.TrimSpace(name)); isNumber {
		return n, n >= 1 && n <= len(wilayas)
	}
	key := normalizeRegion(name)
	if key == "" {
		return 0, false
	}
	code, ok = r.codes[key]
	return code, ok
}

// Regions returns the code table ordered by code.
func (r *RegionResolver) Regions() []Region {
	out := make([]Region, len(wilayas))
	copy(out, wilayas)
	return out
}

func wilayaNumber(s string) (int, bool) {
	if s == "" || len(s) > 2 {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func normalizeRegion(name string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		stripped = name
	}

	stripped = strings.NewReplacer("'", "", "’", "", "-", " ", "_", " ").Replace(stripped)
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
