package config

// defaultSynonyms is the default SYNONYMS_FR table (base word → surface
// variants), carried verbatim from original_source/app/config.py. It is
// flattened into a reverse lookup by internal/synonym at construction
// time — this map is the configuration shape, not the runtime index.
func defaultSynonyms() map[string][]string {
	return map[string][]string{
		"saint":      {"st", "st."},
		"sainte":     {"ste", "ste."},
		"notre-dame": {"n.d.", "nd", "notre dame"},
		"mont":       {"mt"},
		"grand":      {"gr", "gd"},
		"petit":      {"pt", "p'tit"},

		"restaurant":   {"resto", "restau", "table", "établissement"},
		"brasserie":    {"bistrot", "bistro", "taverne", "estaminet"},
		"café":         {"bar", "buvette", "salon de thé", "comptoir"},
		"auberge":      {"hostellerie", "relais"},
		"crêperie":     {"creperie", "galetterie"},
		"sandwicherie": {"snack", "sandwich"},
		"pizzeria":     {"pizza", "italien"},
		"boulangerie":  {"boulanger", "pain", "patisserie"},

		"chinois":   {"asiatique", "oriental", "chine"},
		"japonais":  {"sushi", "japon", "nippon", "ramen", "yakitori"},
		"indien":    {"curry", "inde", "tandoor", "bollywood"},
		"italien":   {"italie", "pasta", "pizzeria"},
		"français":  {"traditionnel", "classique", "terroir", "hexagonal"},
		"américain": {"burger", "hamburger", "fast-food", "usa"},
		"mexicain":  {"tex-mex", "mexique", "tacos"},
		"libanais":  {"oriental", "liban", "mezze"},
		"grec":      {"grèce", "hellénique", "souvlaki"},
		"turc":      {"turquie", "kebab", "döner"},
		"thaï":      {"thaïlande", "thai", "pad-thai"},
		"vietnamien": {"vietnam", "pho", "nem"},
		"marocain":  {"maroc", "maghrébin", "tajine", "couscous"},

		"alsacien": {"alsace", "choucroute", "bretzel"},
		"breton":   {"bretagne", "crêpe", "galette", "cidre"},
		"provençal": {"provence", "méditerranéen", "bouillabaisse"},
		"lyonnais": {"lyon", "bouchon", "quenelle"},
		"normand":  {"normandie", "calvados", "camembert"},
		"savoyard": {"savoie", "fondue", "raclette", "tartiflette"},
		"auvergnat": {"auvergne", "truffade", "cantal"},
		"gascon":   {"gascogne", "cassoulet", "confit"},

		"mcdonalds": {"mcdonald's", "mcdo", "macdo", "ronald", "mcdonald", "macdonalds", "macdonald's", "macdonald"},
		"kfc":       {"kentucky", "poulet frit"},
		"quick":     {"burger king"},
		"subway":    {"sub", "sandwich"},

		"livraison": {"delivery", "à domicile", "emporter", "takeaway"},
		"terrasse":  {"extérieur", "dehors", "jardin", "patio"},
		"climatisé": {"clim", "air conditionné"},
		"parking":   {"stationnement", "garage"},
		"wifi":      {"internet", "connexion"},

		"romantique":   {"amoureux", "intime", "cosy"},
		"familial":     {"famille", "enfants", "kids"},
		"branché":      {"tendance", "mode", "hip"},
		"traditionnel": {"authentique", "ancien", "classique"},
		"moderne":      {"contemporain", "design"},

		"pas cher": {"économique", "abordable", "bon marché"},
		"cher":     {"luxe", "haut de gamme", "gastronomique"},
		"menu":     {"formule", "plat du jour"},

		"ouvert": {"open"},
		"fermé":  {"closed"},
		"midi":   {"déjeuner", "lunch"},
		"soir":   {"dîner", "dinner"},

		"centre-ville":    {"centre", "hypercentre", "coeur de ville"},
		"gare":            {"station", "terminus"},
		"aéroport":        {"airport", "terminal"},
		"université":      {"fac", "campus", "étudiants"},
		"hôpital":         {"clinique", "médical"},
		"zone commerciale": {"centre commercial", "galerie marchande"},

		"ritz":       {"le ritz", "hotel ritz", "palace ritz"},
		"plaza":      {"le plaza", "plaza athénée"},
		"bristol":    {"le bristol", "hotel bristol"},
		"george v":   {"george 5", "four seasons george v"},
		"crillon":    {"le crillon", "hotel de crillon"},
		"meurice":    {"le meurice", "hotel meurice"},
		"shangri-la": {"shangri la", "hotel shangri-la"},

		"café de la paix": {"de la paix", "peace café"},
		"fouquet's":       {"fouquets", "le fouquet's"},
		"angelina":        {"salon angelina", "thé angelina"},
		"ladurée":         {"laduree", "salon ladurée"},
		"berthillon":      {"glacier berthillon", "ile saint louis"},

		"marché des enfants rouges": {"enfants rouges", "marché enfants rouges"},
		"marché saint germain":      {"st germain marché", "marché st germain"},
		"marché aux puces":          {"puces", "puces de saint-ouen"},
		"marché couvert":            {"halles", "marché des halles"},

		"drive":               {"drive-in", "au volant", "sans descendre"},
		"click and collect":   {"click & collect", "retrait magasin", "à récupérer"},
		"brunch":              {"petit-déjeuner tardif", "breakfast"},
		"afterwork":           {"after-work", "après travail", "5 à 7"},
		"happy hour":          {"heure heureuse", "prix réduits"},

		"végétarien":  {"végé", "veggie", "sans viande"},
		"végan":       {"vegan", "végétalien", "plant-based"},
		"sans gluten": {"gluten-free", "intolérant gluten", "coeliaque"},
		"halal":       {"musulman", "certifié halal"},
		"casher":      {"kasher", "cacher", "juif", "rabbinique"},
	}
}
