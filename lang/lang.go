// Package lang holds the fixed vocabulary of the BEL language: function
// keywords, relation names and their symbolic short forms, molecular activity
// labels, amino acid codes, and protein modification codes. Parsers normalize
// every surface spelling (long form, short form, symbol) to the canonical
// names defined here before any downstream code sees them.
package lang

// Canonical function kinds produced by the term grammar.
const (
	Abundance         = "Abundance"
	Gene              = "Gene"
	RNA               = "RNA"
	MiRNA             = "miRNA"
	Protein           = "Protein"
	Complex           = "Complex"
	Composite         = "Composite"
	BiologicalProcess = "BiologicalProcess"
	Pathology         = "Pathology"
	Reaction          = "Reaction"
)

// Canonical modifier kinds attached to statement subjects and objects.
const (
	Activity              = "Activity"
	Degradation           = "Degradation"
	Translocation         = "Translocation"
	CellSecretion         = "CellSecretion"
	CellSurfaceExpression = "CellSurfaceExpression"
)

// FunctionTags maps every accepted function keyword spelling to its canonical
// kind.
var FunctionTags = map[string]string{
	"a":                  Abundance,
	"abundance":          Abundance,
	"g":                  Gene,
	"geneAbundance":      Gene,
	"r":                  RNA,
	"rnaAbundance":       RNA,
	"m":                  MiRNA,
	"microRNAAbundance":  MiRNA,
	"p":                  Protein,
	"proteinAbundance":   Protein,
	"complex":            Complex,
	"complexAbundance":   Complex,
	"composite":          Composite,
	"compositeAbundance": Composite,
	"bp":                 BiologicalProcess,
	"biologicalProcess":  BiologicalProcess,
	"path":               Pathology,
	"pathology":          Pathology,
	"rxn":                Reaction,
	"reaction":           Reaction,
}

// ModifierTags maps modifier keyword spellings to canonical modifier kinds.
var ModifierTags = map[string]string{
	"act":                   Activity,
	"activity":              Activity,
	"deg":                   Degradation,
	"degradation":           Degradation,
	"tloc":                  Translocation,
	"translocation":         Translocation,
	"sec":                   CellSecretion,
	"cellSecretion":         CellSecretion,
	"surf":                  CellSurfaceExpression,
	"cellSurfaceExpression": CellSurfaceExpression,
}

// ShortFunctionTags maps canonical kinds back to their preferred short form
// for canonical output.
var ShortFunctionTags = map[string]string{
	Abundance:         "a",
	Gene:              "g",
	RNA:               "r",
	MiRNA:             "m",
	Protein:           "p",
	Complex:           "complex",
	Composite:         "composite",
	BiologicalProcess: "bp",
	Pathology:         "path",
	Reaction:          "rxn",
}

// ActivityLabels maps every molecular activity spelling, long or short, to the
// canonical label used in effect payloads. The bare short forms double as
// deprecated BEL 1.0 activity functions (kin(p(...)) instead of
// act(p(...), ma(kin))).
var ActivityLabels = map[string]string{
	"cat":                     "CatalyticActivity",
	"catalyticActivity":       "CatalyticActivity",
	"chap":                    "ChaperoneActivity",
	"chaperoneActivity":       "ChaperoneActivity",
	"gtp":                     "GTPBoundActivity",
	"gtpBoundActivity":        "GTPBoundActivity",
	"kin":                     "KinaseActivity",
	"kinaseActivity":          "KinaseActivity",
	"pep":                     "PeptidaseActivity",
	"peptidaseActivity":       "PeptidaseActivity",
	"phos":                    "PhosphataseActivity",
	"phosphataseActivity":     "PhosphataseActivity",
	"ribo":                    "RibosylationActivity",
	"ribosylationActivity":    "RibosylationActivity",
	"tscript":                 "TranscriptionalActivity",
	"transcriptionalActivity": "TranscriptionalActivity",
	"tport":                   "TransportActivity",
	"transportActivity":       "TransportActivity",
}

// RevActivityLabels maps canonical activity labels to their short form for
// canonical output.
var RevActivityLabels = map[string]string{
	"CatalyticActivity":       "cat",
	"ChaperoneActivity":       "chap",
	"GTPBoundActivity":        "gtp",
	"KinaseActivity":          "kin",
	"PeptidaseActivity":       "pep",
	"PhosphataseActivity":     "phos",
	"RibosylationActivity":    "ribo",
	"TranscriptionalActivity": "tscript",
	"TransportActivity":       "tport",
}

// Relation names.
const (
	Increases              = "increases"
	DirectlyIncreases      = "directlyIncreases"
	Decreases              = "decreases"
	DirectlyDecreases      = "directlyDecreases"
	RateLimitingStepOf     = "rateLimitingStepOf"
	CausesNoChange         = "causesNoChange"
	Regulates              = "regulates"
	NegativeCorrelation    = "negativeCorrelation"
	PositiveCorrelation    = "positiveCorrelation"
	Association            = "association"
	Orthologous            = "orthologous"
	TranscribedTo          = "transcribedTo"
	TranslatedTo           = "translatedTo"
	HasMember              = "hasMember"
	HasMembers             = "hasMembers"
	HasComponent           = "hasComponent"
	IsA                    = "isA"
	SubProcessOf           = "subProcessOf"
	AnalogousTo            = "analogousTo"
	BiomarkerFor           = "biomarkerFor"
	PrognosticBiomarkerFor = "prognosticBiomarkerFor"
)

// Relations internal to graph structure, never asserted by statements.
const (
	HasVariant  = "hasVariant"
	HasReactant = "hasReactant"
	HasProduct  = "hasProduct"
)

// RelationTags maps every accepted relation spelling, word or symbol, to its
// canonical relation name.
var RelationTags = map[string]string{
	"->":                     Increases,
	"→":                      Increases,
	"increases":              Increases,
	"=>":                     DirectlyIncreases,
	"⇒":                      DirectlyIncreases,
	"directlyIncreases":      DirectlyIncreases,
	"-|":                     Decreases,
	"decreases":              Decreases,
	"=|":                     DirectlyDecreases,
	"directlyDecreases":      DirectlyDecreases,
	"rateLimitingStepOf":     RateLimitingStepOf,
	"cnc":                    CausesNoChange,
	"causesNoChange":         CausesNoChange,
	"reg":                    Regulates,
	"regulates":              Regulates,
	"neg":                    NegativeCorrelation,
	"negativeCorrelation":    NegativeCorrelation,
	"pos":                    PositiveCorrelation,
	"positiveCorrelation":    PositiveCorrelation,
	"--":                     Association,
	"association":            Association,
	"orthologous":            Orthologous,
	":>":                     TranscribedTo,
	"transcribedTo":          TranscribedTo,
	">>":                     TranslatedTo,
	"translatedTo":           TranslatedTo,
	"hasMember":              HasMember,
	"hasMembers":             HasMembers,
	"hasComponent":           HasComponent,
	"isA":                    IsA,
	"subProcessOf":           SubProcessOf,
	"analogousTo":            AnalogousTo,
	"biomarkerFor":           BiomarkerFor,
	"prognosticBiomarkerFor": PrognosticBiomarkerFor,
}

// CausalRelations are the relations that admit a parenthesized relationship
// as object in the grammar. The builder still rejects the nesting; the
// grammar recognizes it so the rejection is specific rather than a generic
// syntax error.
var CausalRelations = map[string]bool{
	Increases:         true,
	DirectlyIncreases: true,
	Decreases:         true,
	DirectlyDecreases: true,
}

// DeprecatedRelations trigger a deprecation warning but still parse.
var DeprecatedRelations = map[string]bool{
	AnalogousTo:            true,
	BiomarkerFor:           true,
	PrognosticBiomarkerFor: true,
}

// AminoAcids maps single-letter amino acid codes to their three-letter form.
var AminoAcids = map[string]string{
	"A": "Ala",
	"R": "Arg",
	"N": "Asn",
	"D": "Asp",
	"C": "Cys",
	"E": "Glu",
	"Q": "Gln",
	"G": "Gly",
	"H": "His",
	"I": "Ile",
	"L": "Leu",
	"K": "Lys",
	"M": "Met",
	"F": "Phe",
	"P": "Pro",
	"S": "Ser",
	"T": "Thr",
	"W": "Trp",
	"Y": "Tyr",
	"V": "Val",
}

// IsAminoAcid reports whether code is a valid single- or three-letter amino
// acid code.
func IsAminoAcid(code string) bool {
	if _, ok := AminoAcids[code]; ok {
		return true
	}
	for _, three := range AminoAcids {
		if code == three {
			return true
		}
	}
	return false
}

// PmodCodes are the default-namespace protein modification names, including
// the legacy single-letter BEL 1.0 codes.
var PmodCodes = map[string]bool{
	"Ac": true, "ADPRib": true, "Farn": true, "Gerger": true, "Glyco": true,
	"Hy": true, "ISG": true, "Me": true, "Me1": true, "Me2": true, "Me3": true,
	"Myr": true, "Nedd": true, "NGlyco": true, "NO": true, "OGlyco": true,
	"Palm": true, "Ph": true, "Sulf": true, "Sumo": true, "Ub": true,
	"UbK48": true, "UbK63": true, "UbMono": true, "UbPoly": true,
}

// LegacyPmodCodes maps BEL 1.0 single-letter modification codes to their
// modern names. Parsers accept them with a deprecation warning.
var LegacyPmodCodes = map[string]string{
	"P": "Ph",
	"A": "Ac",
	"F": "Farn",
	"G": "Glyco",
	"H": "Hy",
	"M": "Me",
	"R": "ADPRib",
	"S": "Sumo",
	"U": "Ub",
	"O": "NO",
}
