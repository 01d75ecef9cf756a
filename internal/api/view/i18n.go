package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Idiomas com textos cadastrados; o primeiro é o padrão
var supported = []language.Tag{language.German, language.English}

var catalog = map[language.Tag]map[string]string{
	language.German: {
		"app.title":            "Donor Analytics",
		"nav.home":             "Start",
		"nav.segmentation":     "Segmentierung",
		"nav.churn":            "Churn",
		"nav.ltv":              "LTV",
		"footer.source":        "Datenquelle: %s",
		"home.welcome":         "Willkommen! Über die Navigation links gelangen Sie zu Segmentierung, Churn oder LTV.",
		"home.donors":          "Spender",
		"home.donations":       "Spenden",
		"seg.caption":          "Segmentiert Spender in Cluster, um Outreach zu priorisieren.",
		"seg.k":                "Anzahl Cluster (k)",
		"seg.since":            "Von",
		"seg.until":            "Bis",
		"seg.apply":            "Anwenden",
		"seg.run":              "Lauf %s · Referenzdatum %s · %d Spenden · %d verworfene Zeilen",
		"seg.overview":         "Cluster-Übersicht",
		"seg.map":              "Cluster-Map (PCA)",
		"seg.map_empty":        "Die Projektion ist für diesen Lauf nicht verfügbar.",
		"seg.sizes":            "Clustergrößen",
		"seg.targets":          "Target-Liste für Outreach",
		"seg.targets_question": "Welche Segmente sollen angezeigt werden?",
		"seg.targets_empty":    "Keine Spender in den gewählten Segmenten.",
		"seg.interpretation":   "Interpretation: kleine Recency + hohe Frequency = sehr wahrscheinlich wieder spendebereit. Diese Personen priorisieren (Danke-Mail, Karte, persönlicher Kontakt).",
		"placeholder.text":     "Diese Seite ist noch nicht implementiert.",
		"error.title":          "Fehler",
		"error.schema":         "Fehlende Spalten. Benötigt: %s",
		"error.empty":          "Keine gültigen Spenden gefunden.",
		"error.amount":         "Die Spendensumme eines Spenders ist zu groß für die Auswertung.",
		"error.insufficient":   "Zu wenige Spender (%d) für k=%d. Bitte k auf höchstens %d reduzieren.",
		"error.invalid":        "Ungültige Eingabe: %s",
		"error.provider":       "Die Datenquelle ist nicht erreichbar.",
		"error.internal":       "Interner Fehler.",
		"col.cluster":          "Cluster",
		"col.donors":           "Spender",
		"col.recency_mean":     "Ø Recency (Tage)",
		"col.frequency_mean":   "Ø Frequency",
		"col.monetary_mean":    "Ø Betrag gesamt",
		"col.segment":          "Segment",
		"col.donor_id":         "Spender-ID",
		"col.recency_days":     "Recency (Tage)",
		"col.frequency":        "Frequency",
		"col.monetary_total":   "Betrag gesamt",
		"col.monetary_avg":     "Ø Betrag",
		"col.span_days":        "Spanne (Tage)",
		"col.count":            "Anzahl",
	},
	language.English: {
		"app.title":            "Donor Analytics",
		"nav.home":             "Home",
		"nav.segmentation":     "Segmentation",
		"nav.churn":            "Churn",
		"nav.ltv":              "LTV",
		"footer.source":        "Data source in use: %s",
		"home.welcome":         "Welcome! Use the left sidebar to navigate to Segmentation, Churn, or LTV.",
		"home.donors":          "Donors",
		"home.donations":       "Donations",
		"seg.caption":          "Segments donors into clusters to prioritise outreach.",
		"seg.k":                "Number of clusters (k)",
		"seg.since":            "Since",
		"seg.until":            "Until",
		"seg.apply":            "Apply",
		"seg.run":              "Run %s · reference date %s · %d donations · %d dropped rows",
		"seg.overview":         "Cluster overview",
		"seg.map":              "Cluster map (PCA)",
		"seg.map_empty":        "The projection is not available for this run.",
		"seg.sizes":            "Cluster sizes",
		"seg.targets":          "Outreach target list",
		"seg.targets_question": "Which segments should be shown?",
		"seg.targets_empty":    "No donors in the selected segments.",
		"seg.interpretation":   "Interpretation: low recency + high frequency = very likely to give again. Prioritise these people (thank-you mail, card, personal contact).",
		"placeholder.text":     "This page is not implemented yet.",
		"error.title":          "Error",
		"error.schema":         "Missing columns. Required: %s",
		"error.empty":          "No valid donations found.",
		"error.amount":         "A donor's total amount is too large to analyse.",
		"error.insufficient":   "Too few donors (%d) for k=%d. Reduce k to at most %d.",
		"error.invalid":        "Invalid input: %s",
		"error.provider":       "The data source is unavailable.",
		"error.internal":       "Internal error.",
		"col.cluster":          "Cluster",
		"col.donors":           "Donors",
		"col.recency_mean":     "Mean recency (days)",
		"col.frequency_mean":   "Mean frequency",
		"col.monetary_mean":    "Mean total amount",
		"col.segment":          "Segment",
		"col.donor_id":         "Donor ID",
		"col.recency_days":     "Recency (days)",
		"col.frequency":        "Frequency",
		"col.monetary_total":   "Total amount",
		"col.monetary_avg":     "Average amount",
		"col.span_days":        "Span (days)",
		"col.count":            "Count",
	},
}

func init() {
	for tag, messages := range catalog {
		for key, msg := range messages {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}

// resolveTag escolhe o idioma suportado mais próximo de APP_LOCALE
func resolveTag(locale string) language.Tag {
	requested, err := language.Parse(locale)
	if err != nil {
		return supported[0]
	}

	_, index, confidence := language.NewMatcher(supported).Match(requested)
	if confidence == language.No {
		return supported[0]
	}

	// Mantém a região pedida para a formatação de números
	base, _ := requested.Base()
	supportedBase, _ := supported[index].Base()
	if base == supportedBase {
		return requested
	}
	return supported[index]
}
