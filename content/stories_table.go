package content

// Stories is the shared word table feeding damage story rendering.
// Each key maps to interchangeable fragments; ChooseWords picks one per
// key per story.
var Stories = map[string][]string{
	"whisper":  {"whisper", "slit", "sliver", "nick", "tip", "trace", "scratch", "line"},
	"promise":  {"promise", "threat", "omen"},
	"throat":   {"throat", "gullet", "neck", "collar", "skin", "flesh", "windpipe"},
	"bead":     {"bead", "line", "streak", "pearl", "drop", "rivulet", "gem"},
	"brushes":  {"brushes", "glances", "catches", "snags", "nicks", "grazes", "scratches", "scrapes"},
	"silver":   {"silver", "cold", "keen", "narrow", "bright", "hissing", "singing", "hungry", "polished", "cruel", "waiting"},
	"blood":    {"blood", "crimson", "scarlet"},
	"fountain": {"fountain", "plume", "spray", "fan", "jet", "pulse", "current", "geyser", "torrent", "cascade", "eruption"},
	"air":      {"air", "night", "dust", "dark"},
	"parts":    {"parts", "severs", "cleaves", "cuts", "shears", "sunders", "hews", "divides", "unmakes"},
	"grazes":   {"grazes", "skims", "kisses", "touches", "nicks", "traces", "slices"},
	"gathers":  {"gathers", "beads", "forms", "pearls", "wells", "collects", "emerges"},
	"breath":   {"breath", "whisper", "kiss", "touch", "hiss", "song", "edge"},
	"blooms":   {"blooms", "blossoms", "flowers", "spreads", "unfurls"},
	"slice":    {"slice", "cut", "stroke"},
	"opens":    {"opens", "etches", "scores", "marks", "inscribes"},
	"wound":    {"wound", "band", "frown", "crevice"},
	"buries":   {"buries", "sinks", "plunges", "thrusts", "drives", "sheathes", "vanishes"},
	"surges":   {"surges", "pours", "floods", "jets", "erupts", "rushes", "torrents"},
	"carves":   {"carves", "hews", "cleaves", "rakes", "gouges", "digs", "trenches"},
	"pours":    {"pours", "spills", "streams", "runs", "cascades", "gushes", "floods"},
	"sags":     {"sags", "droops", "slumps", "wilts", "falters", "gives way", "sinks"},
	"runs":     {"runs", "courses", "streams", "leaks", "flows", "spills", "pumps"},
	"leaks":    {"leaks", "seeps", "dribbles", "trickles", "weeps", "oozes"},
	"stoops":   {"stoops", "bows", "hunches", "buckles", "folds", "slumps", "doubles over", "crumples"},
	"streams":  {"streams", "pours", "courses", "rivers", "floods", "cascades"},
	"fans":     {"fans", "sprays", "veils", "sheets", "mists", "curtains", "clouds"},
	"drops":    {"drops", "falls", "folds", "collapses", "tumbles", "plummets", "crashes"},
	"scarlet":  {"scarlet", "crimson", "red", "vermilion", "ruby", "vivid"},
	"spray":    {"spray", "veil", "sheet", "mist", "cloud", "burst", "plume"},
	"vivid":    {"vivid", "stark", "bright", "raw", "wet", "shocking"},
	"hot":      {"hot", "steaming", "warm", "sudden", "scalding", "feverish"},
	"ruined":   {"ruined", "shattered", "broken", "mangled", "destroyed", "unmade"},
	"sudden":   {"sudden", "shocking", "abrupt", "startling", "violent"},
	"gruesome": {"gruesome", "brutal", "ghastly", "hideous", "grisly"},
	"wet":      {"wet", "slick", "sodden", "glistening"},
	"fragile":  {"fragile", "delicate", "tenuous", "brittle", "thin"},
	"spreading": {"spreading", "widening", "creeping", "growing", "seeping"},
	"violent":  {"violent", "brutal", "savage", "vicious"},
	"bloody":   {"bloody", "bloodied", "crimson", "scarlet", "red"},
	"skin":     {"skin", "flesh", "hide", "meat"},
}
