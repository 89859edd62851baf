package bot

import (
	"errors"
	"fmt"
)

// DefaultID is the persona attributed to sessions whose bot cannot be derived.
const DefaultID = "brain-ai"

var (
	ErrNoResponses = errors.New("bot has no responses")
	ErrDuplicateID = errors.New("duplicate bot id")
	ErrMissingID   = errors.New("bot id is required")
)

// Bot is an immutable catalog persona with a fixed set of canned replies.
type Bot struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Capabilities []string `json:"capabilities"`
	Responses    []string `json:"responses"`
}

// Validate checks the catalog invariants: every bot has an id, at least one
// response, and ids are unique.
func Validate(bots []Bot) error {
	seen := make(map[string]struct{}, len(bots))
	for _, b := range bots {
		if b.ID == "" {
			return ErrMissingID
		}
		if len(b.Responses) == 0 {
			return fmt.Errorf("%s: %w", b.ID, ErrNoResponses)
		}
		if _, ok := seen[b.ID]; ok {
			return fmt.Errorf("%s: %w", b.ID, ErrDuplicateID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

// Seed provides the compiled-in catalog shown in the bot hub.
func Seed() []Bot {
	return []Bot{
		{
			ID:           "brain-ai",
			Name:         "Brain AI",
			Description:  "Your intelligent general-purpose assistant for any question or task",
			Category:     "General",
			Capabilities: []string{"General Knowledge", "Problem Solving", "Analysis", "Writing"},
			Responses: []string{
				"I'm here to help with any question you have!",
				"Let me analyze that for you...",
				"That's an interesting question. Here's my perspective...",
				"I can help you break this down step by step.",
			},
		},
		{
			ID:           "code-assistant",
			Name:         "Code Assistant",
			Description:  "Expert programming help for development, debugging, and code review",
			Category:     "Development",
			Capabilities: []string{"Code Review", "Debugging", "Architecture", "Best Practices"},
			Responses: []string{
				"Let me help you debug that code...",
				"Here's a more efficient approach...",
				"I can optimize this for better performance...",
				"Let's refactor this to make it more maintainable.",
			},
		},
		{
			ID:           "creative-bot",
			Name:         "Creative Bot",
			Description:  "Unleash creativity with art, design, and content creation assistance",
			Category:     "Creative",
			Capabilities: []string{"Content Creation", "Design Ideas", "Brainstorming", "Art Direction"},
			Responses: []string{
				"Let's create something amazing together!",
				"I have some creative ideas for you...",
				"Here's a fresh perspective on your project...",
				"Let's think outside the box!",
			},
		},
		{
			ID:           "social-media-manager",
			Name:         "Sociálny médiový manažér",
			Description:  "Automaticky vytvára a plánuje príspevky na sociálne siete, reaguje na komentáre a sleduje trendy",
			Category:     "Marketing",
			Capabilities: []string{"Tvorba obsahu", "Plánovanie príspevkov", "Sledovanie trendov", "Správa komentárov"},
			Responses: []string{
				"Vytvorím pre vás pútavý obsah na sociálne siete...",
				"Naplánujem vašu kampaň pre maximálny dosah...",
				"Sledujem aktuálne trendy vo vašom odvetví...",
				"Pripravím stratégiu pre zvýšenie engagementu...",
			},
		},
		{
			ID:           "customer-support",
			Name:         "Špecialista na zákaznícku podporu",
			Description:  "Poskytuje nepretržitú podporu zákazníkom s personalizovanými odpoveďami",
			Category:     "Podpora",
			Capabilities: []string{"24/7 podpora", "Personalizované odpovede", "Riešenie problémov", "Eskalácia"},
			Responses: []string{
				"Som tu, aby som vám pomohol s vaším problémom...",
				"Rozumiem vašej situácii, vyriešime to spolu...",
				"Nájdem pre vás najlepšie riešenie...",
				"Váš problém je môjou prioritou...",
			},
		},
		{
			ID:           "data-analyst",
			Name:         "Dátový analytik",
			Description:  "Spracováva veľké množstvá dát a generuje prehľadné analýzy a odporúčania",
			Category:     "Analýzy",
			Capabilities: []string{"Analýza dát", "Vizualizácia", "Predikcie", "Odporúčania"},
			Responses: []string{
				"Analyzujem vaše dáta a pripravím prehľadný report...",
				"Na základe dát odporúčam nasledujúce kroky...",
				"Trendy ukazujú zaujímavé možnosti...",
				"Vytvorím pre vás detailnú analýzu...",
			},
		},
		{
			ID:           "business-developer",
			Name:         "Obchodný rozvojár",
			Description:  "Pomáha pri hľadaní nových obchodných príležitostí a generovaní leadov",
			Category:     "Obchod",
			Capabilities: []string{"Hľadanie príležitostí", "Generovanie leadov", "Stratégie", "Analýza trhu"},
			Responses: []string{
				"Identifikoval som nové obchodné príležitosti...",
				"Pripravím stratégiu pre expanziu na trh...",
				"Našiel som potenciálnych partnerov...",
				"Analyzujem konkurenčné prostredie...",
			},
		},
		{
			ID:           "copywriter",
			Name:         "Copywriter",
			Description:  "Vytvára pútavé texty pre webové stránky, reklamy, blogy a ďalšie kanály",
			Category:     "Marketing",
			Capabilities: []string{"Tvorba textov", "Reklamné texty", "Blog články", "Webový obsah"},
			Responses: []string{
				"Napíšem pre vás pútavý text, ktorý zaujme...",
				"Vytvorím obsah v súlade s tónom vašej značky...",
				"Pripravím kampaň, ktorá zvýši konverzie...",
				"Vaša správa bude jasná a presvedčivá...",
			},
		},
		{
			ID:           "seo-specialist",
			Name:         "SEO špecialista",
			Description:  "Optimalizuje online obsah a analyzuje výkonnosť webu pre lepšie pozície",
			Category:     "Marketing",
			Capabilities: []string{"Optimalizácia obsahu", "Analýza výkonnosti", "Keyword research", "Technické SEO"},
			Responses: []string{
				"Optimalizujem váš obsah pre vyhľadávače...",
				"Analyzujem výkonnosť vašej stránky...",
				"Našiel som nové kľúčové slová pre vás...",
				"Pripravím SEO stratégiu pre rast...",
			},
		},
		{
			ID:           "ecommerce-manager",
			Name:         "E-commerce manažér",
			Description:  "Spravuje online obchody od nastavenia produktov až po optimalizáciu predaja",
			Category:     "E-commerce",
			Capabilities: []string{"Správa produktov", "Optimalizácia predaja", "Analýza výkonnosti", "UX/UI"},
			Responses: []string{
				"Optimalizujem váš online obchod pre vyššie predaje...",
				"Analyzujem správanie zákazníkov...",
				"Pripravím stratégiu pre zvýšenie konverzií...",
				"Nastavím efektívne predajné procesy...",
			},
		},
		{
			ID:           "email-marketer",
			Name:         "Emailový marketér",
			Description:  "Navrhuje a automatizuje emailové kampane na zvýšenie konverzií",
			Category:     "Marketing",
			Capabilities: []string{"Emailové kampane", "Automatizácia", "Personalizácia", "A/B testovanie"},
			Responses: []string{
				"Vytvorím emailovú kampaň s vysokou otváracosťou...",
				"Nastavím automatické sekvence pre lepší engagement...",
				"Personalizujem správy pre každého zákazníka...",
				"Optimalizujem kampane na základe výsledkov...",
			},
		},
		{
			ID:           "personal-coach",
			Name:         "Personálny kouč",
			Description:  "Podporuje osobný rozvoj a vytvára plány na zlepšenie produktivity",
			Category:     "Rozvoj",
			Capabilities: []string{"Osobný rozvoj", "Produktivita", "Motivácia", "Ciele"},
			Responses: []string{
				"Pomôžem vám dosiahnuť vaše ciele...",
				"Vytvoríme plán pre váš osobný rast...",
				"Motivujem vás k dosiahnutiu úspechu...",
				"Nájdeme spôsob, ako zvýšiť vašu produktivitu...",
			},
		},
		{
			ID:           "hr-specialist",
			Name:         "HR špecialista",
			Description:  "Zefektívňuje nábor a pomáha s onboardovaním nových zamestnancov",
			Category:     "HR",
			Capabilities: []string{"Nábor", "Onboarding", "Stratégie", "Talent management"},
			Responses: []string{
				"Pomôžem vám nájsť ideálnych kandidátov...",
				"Vytvoríme efektívny proces náboru...",
				"Pripravím onboarding program...",
				"Analyzujem potreby vášho tímu...",
			},
		},
		{
			ID:           "virtual-assistant",
			Name:         "Virtuálny asistent",
			Description:  "Preberá administratívne úlohy a správu kalendára pre efektívnejšiu prácu",
			Category:     "Administratíva",
			Capabilities: []string{"Správa kalendára", "Plánovanie", "Administratíva", "Organizácia"},
			Responses: []string{
				"Zorganizujem váš kalendár a schôdzky...",
				"Preberiem administratívne úlohy...",
				"Naplánujem vaše aktivity efektívnejšie...",
				"Pomôžem vám s organizáciou práce...",
			},
		},
		{
			ID:           "sales-expert",
			Name:         "Predajný expert",
			Description:  "Automatizuje predajné procesy a navrhuje stratégie na zvýšenie predaja",
			Category:     "Predaj",
			Capabilities: []string{"Predajné procesy", "Lead management", "Stratégie", "CRM"},
			Responses: []string{
				"Optimalizujem vaše predajné procesy...",
				"Vytvoríme stratégiu pre zvýšenie predaja...",
				"Analyzujem vašich potenciálnych zákazníkov...",
				"Nastavím efektívny predajný funnel...",
			},
		},
	}
}
