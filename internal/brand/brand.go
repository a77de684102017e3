// Package brand infers a manufacturer brand from free-text component
// descriptions and pairs it with an uploaded icon. Matching walks a fixed
// pattern table in order; the first match wins, so table order is the
// authoritative tie-break.
package brand

import (
	"regexp"
	"sort"
	"strings"

	"speccard-service/internal/models"
)

type brandPattern struct {
	name     string
	patterns []*regexp.Regexp
}

func re(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}

// brandTable is ordered: chip makers first so that partner-card strings like
// "ASUS ROG GeForce RTX" resolve to the chip brand, then memory/storage,
// boards, PSUs/cases/cooling. Do not reorder without revisiting callers.
var brandTable = []brandPattern{
	{"Intel", []*regexp.Regexp{re(`\bintel\b`), re(`\bcore\s+i[3579]\b`), re(`\bcore\s+ultra\b`), re(`\bxeon\b`), re(`\barc\s+a\d`)}},
	{"AMD", []*regexp.Regexp{re(`\bamd\b`), re(`\bryzen\b`), re(`\bradeon\b`), re(`\bthreadripper\b`), re(`\bepyc\b`)}},
	{"NVIDIA", []*regexp.Regexp{re(`\bnvidia\b`), re(`\bgeforce\b`), re(`\brtx\s*\d{4}`), re(`\bgtx\s*\d{3,4}`), re(`\bquadro\b`)}},
	{"Samsung", []*regexp.Regexp{re(`\bsamsung\b`), re(`\b9[789]0\s*(pro|evo)\b`)}},
	{"Western Digital", []*regexp.Regexp{re(`\bwestern\s+digital\b`), re(`\bwd\s+(black|blue|red|green|gold)\b`), re(`\bwd_black\b`)}},
	{"Seagate", []*regexp.Regexp{re(`\bseagate\b`), re(`\bbarracuda\b`), re(`\bfirecuda\b`), re(`\bironwolf\b`)}},
	{"Crucial", []*regexp.Regexp{re(`\bcrucial\b`), re(`\bballistix\b`)}},
	{"Kingston", []*regexp.Regexp{re(`\bkingston\b`), re(`\bfury\s+(beast|renegade)\b`)}},
	{"G.Skill", []*regexp.Regexp{re(`\bg\.?\s?skill\b`), re(`\btrident\s*z\b`), re(`\bripjaws\b`)}},
	{"Corsair", []*regexp.Regexp{re(`\bcorsair\b`), re(`\bvengeance\b`), re(`\bdominator\b`)}},
	{"TeamGroup", []*regexp.Regexp{re(`\bteam\s?group\b`), re(`\bt-force\b`)}},
	{"ADATA", []*regexp.Regexp{re(`\badata\b`), re(`\bxpg\b`)}},
	{"ASUS", []*regexp.Regexp{re(`\basus\b`), re(`\brog\s+(strix|crosshair|maximus)\b`), re(`\btuf\s+gaming\b`), re(`\bprime\s+[bxz]\d{3}\b`)}},
	{"MSI", []*regexp.Regexp{re(`\bmsi\b`), re(`\bmag\s+[bxz]\d{3}\b`), re(`\bmpg\b`), re(`\btomahawk\b`)}},
	{"Gigabyte", []*regexp.Regexp{re(`\bgigabyte\b`), re(`\baorus\b`)}},
	{"ASRock", []*regexp.Regexp{re(`\basrock\b`), re(`\bphantom\s+gaming\b`), re(`\btaichi\b`)}},
	{"EVGA", []*regexp.Regexp{re(`\bevga\b`), re(`\bsupernova\b`)}},
	{"Seasonic", []*regexp.Regexp{re(`\bseasonic\b`), re(`\bfocus\s+[gp]x\b`)}},
	{"be quiet!", []*regexp.Regexp{re(`\bbe\s+quiet!?`), re(`\bdark\s+(rock|power)\b`), re(`\bpure\s+base\b`)}},
	{"Cooler Master", []*regexp.Regexp{re(`\bcooler\s?master\b`), re(`\bhyper\s+212\b`), re(`\bmasterbox\b`)}},
	{"Noctua", []*regexp.Regexp{re(`\bnoctua\b`), re(`\bnh-[du]\d{2}\b`)}},
	{"NZXT", []*regexp.Regexp{re(`\bnzxt\b`), re(`\bkraken\b`)}},
	{"Lian Li", []*regexp.Regexp{re(`\blian\s?li\b`), re(`\bo11\b`), re(`\blancool\b`)}},
	{"Fractal Design", []*regexp.Regexp{re(`\bfractal\s+design\b`), re(`\bmeshify\b`), re(`\bdefine\s+r?\d\b`)}},
	{"Thermaltake", []*regexp.Regexp{re(`\bthermaltake\b`), re(`\btoughpower\b`)}},
	{"Arctic", []*regexp.Regexp{re(`\barctic\b`), re(`\bliquid\s+freezer\b`)}},
	{"DeepCool", []*regexp.Regexp{re(`\bdeep\s?cool\b`), re(`\bassassin\b`)}},
	{"Sapphire", []*regexp.Regexp{re(`\bsapphire\b`), re(`\bnitro\+`), re(`\bpulse\s+r[x9]\b`)}},
	{"XFX", []*regexp.Regexp{re(`\bxfx\b`), re(`\bmerc\s+\d{3}\b`)}},
	{"PowerColor", []*regexp.Regexp{re(`\bpowercolor\b`), re(`\bred\s+devil\b`), re(`\bhellhound\b`)}},
	{"Zotac", []*regexp.Regexp{re(`\bzotac\b`)}},
	{"PNY", []*regexp.Regexp{re(`\bpny\b`)}},
	{"SilverStone", []*regexp.Regexp{re(`\bsilverstone\b`)}},
	{"Patriot", []*regexp.Regexp{re(`\bpatriot\b`), re(`\bviper\s+(steel|elite)\b`)}},
}

// Detect returns the first brand whose patterns match the text, or "" when
// nothing matches or the text is empty.
func Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	for _, b := range brandTable {
		for _, p := range b.patterns {
			if p.MatchString(text) {
				return b.name
			}
		}
	}
	return ""
}

// FindIcon detects a brand in the text and looks up a matching uploaded icon.
// Returns nil when no brand is detected or no icon exists for it; callers do
// not distinguish the two cases.
func FindIcon(text string, icons []models.BrandIcon) *models.BrandIcon {
	name := Detect(text)
	if name == "" {
		return nil
	}
	return models.FindBrandIcon(icons, name)
}

// AllKnownBrands returns the full brand vocabulary, sorted. Used to populate
// selection UIs; not load-bearing for layout correctness.
func AllKnownBrands() []string {
	names := make([]string, 0, len(brandTable))
	for _, b := range brandTable {
		names = append(names, b.name)
	}
	sort.Strings(names)
	return names
}
