package grocery

import (
	"strings"

	"github.com/oxtailbadger/mise/internal/model"
)

// detectOrder is the classification priority. Some names are lexically
// ambiguous ("coconut milk" reads dairy and canned; "canned tomato sauce"
// reads produce and canned) and the tie is broken by this fixed order, not
// by scoring. Reordering it changes observable results.
var detectOrder = []model.ItemCategory{
	model.CategoryProtein,
	model.CategoryProduce,
	model.CategoryDairy,
	model.CategoryCanned,
	model.CategoryDryGoods,
}

// Classifier maps free-text ingredient names onto grocery categories by
// ordered keyword matching. Keyword tables are fixed at construction so
// tests can swap in their own without touching shared state.
type Classifier struct {
	keywords map[model.ItemCategory][]string
}

// NewClassifier builds a Classifier over the given keyword tables. Matching
// is substring-based against the lowercased name.
func NewClassifier(keywords map[model.ItemCategory][]string) *Classifier {
	return &Classifier{keywords: keywords}
}

// Detect returns the most likely category for an ingredient name, or
// CategoryOther when nothing matches.
func (c *Classifier) Detect(name string) model.ItemCategory {
	lower := strings.ToLower(name)
	for _, cat := range detectOrder {
		for _, kw := range c.keywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return model.CategoryOther
}

// DefaultKeywords returns the built-in keyword tables. Callers get a fresh
// map each time; the backing keyword slices are never mutated.
func DefaultKeywords() map[model.ItemCategory][]string {
	return map[model.ItemCategory][]string{
		model.CategoryProtein: {
			"chicken", "beef", "pork", "lamb", "veal", "duck", "turkey", "bison",
			"fish", "salmon", "tuna", "cod", "tilapia", "halibut", "trout", "sardine",
			"shrimp", "scallop", "crab", "lobster", "clam", "mussel", "oyster", "anchovy",
			"sausage", "bacon", "ham", "pancetta", "prosciutto", "salami", "pepperoni",
			"steak", "ground", "mince", "egg", "tofu", "tempeh", "seitan", "edamame",
			"lentil", "chickpea", "black bean", "kidney bean", "white bean", "cannellini",
		},
		model.CategoryProduce: {
			"tomato", "lettuce", "spinach", "kale", "arugula", "chard", "collard",
			"onion", "shallot", "leek", "chive", "scallion", "green onion",
			"garlic", "ginger", "turmeric",
			"pepper", "jalapeño", "serrano", "habanero", "chili",
			"zucchini", "squash", "pumpkin", "mushroom", "portobello", "shiitake",
			"carrot", "parsnip", "turnip", "radish", "beet",
			"potato", "sweet potato", "yam",
			"broccoli", "cauliflower", "brussels", "cabbage", "bok choy",
			"celery", "fennel", "artichoke", "asparagus", "eggplant", "corn", "peas",
			"cucumber", "avocado", "lime", "lemon", "orange", "grapefruit",
			"apple", "pear", "peach", "plum", "mango", "pineapple", "papaya",
			"banana", "berry", "strawberry", "blueberry", "raspberry", "blackberry",
			"grape", "cherry", "watermelon", "melon",
			"herb", "basil", "parsley", "cilantro", "mint", "thyme", "rosemary",
			"sage", "dill", "oregano", "tarragon", "bay leaf",
			"watercress", "endive", "radicchio",
		},
		model.CategoryDairy: {
			"milk", "cream", "half-and-half", "half and half", "buttermilk",
			"butter", "ghee",
			"cheese", "cheddar", "mozzarella", "parmesan", "parmigiano", "gruyère",
			"gruyere", "ricotta", "feta", "brie", "gouda", "goat cheese", "blue cheese",
			"cottage cheese", "cream cheese", "mascarpone", "provolone", "swiss",
			"yogurt", "kefir", "sour cream", "crème fraîche", "creme fraiche",
			"ice cream", "whipped cream",
		},
		model.CategoryDryGoods: {
			"flour", "sugar", "brown sugar", "powdered sugar", "honey", "maple syrup",
			"rice", "brown rice", "wild rice", "basmati", "jasmine",
			"pasta", "noodle", "spaghetti", "penne", "rigatoni", "fettuccine",
			"linguine", "farfalle", "orzo", "couscous", "bulgur", "farro",
			"quinoa", "oat", "granola", "cereal",
			"bread", "baguette", "pita", "tortilla", "wrap", "roll", "bun",
			"cracker", "breadcrumb", "panko",
			"cornstarch", "cornmeal", "semolina", "almond flour",
			"baking powder", "baking soda", "yeast",
			"cocoa", "chocolate chip", "vanilla extract",
			"oil", "olive oil", "vegetable oil", "sesame oil", "coconut oil",
			"vinegar", "soy sauce", "fish sauce", "worcestershire", "hot sauce",
			"salt", "pepper", "spice", "seasoning", "cumin", "paprika", "coriander",
			"turmeric", "cayenne", "chili powder", "garlic powder", "onion powder",
			"nutmeg", "cinnamon", "cardamom", "clove", "allspice", "star anise",
			"mustard", "ketchup", "mayonnaise", "tahini", "peanut butter",
			"jam", "jelly", "syrup",
			"nuts", "almond", "walnut", "pecan", "cashew", "pine nut", "peanut",
			"seed", "sunflower", "pumpkin seed", "sesame", "chia", "flax",
			"dried fruit", "raisin", "cranberry",
		},
		model.CategoryCanned: {
			"canned", "can of", "tin of",
			"tomato sauce", "tomato paste", "crushed tomato", "diced tomato",
			"tomato puree", "marinara",
			"broth", "stock", "bouillon",
			"coconut milk", "coconut cream",
			"beans in can", "canned beans", "canned chickpea", "canned lentil",
			"canned tuna", "canned salmon", "canned sardine",
			"canned corn", "canned pea", "canned artichoke",
			"olives", "capers", "roasted pepper",
			"evaporated milk", "condensed milk",
		},
	}
}
