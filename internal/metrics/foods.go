package metrics

// Food is one entry in the food database: a name and its per-unit macros.
type Food struct {
	ID      string       `json:"id" db:"id"`
	Name    string       `json:"name" db:"name"`
	Profile MacroProfile `json:"profile"`
	Custom  bool         `json:"custom,omitempty" db:"custom"`
}

// builtinFoods is the read-only built-in food table. Profiles are per
// serving, not per 100g, so a logged amount of 1 means one serving.
var builtinFoods = []Food{
	{ID: "oats", Name: "Oats (50g dry)", Profile: MacroProfile{Cal: 190, P: 6.5, C: 33, F: 3.5}},
	{ID: "egg", Name: "Whole egg", Profile: MacroProfile{Cal: 72, P: 6.3, C: 0.4, F: 4.8}},
	{ID: "chicken_breast", Name: "Chicken breast (150g)", Profile: MacroProfile{Cal: 248, P: 46.5, C: 0, F: 5.4}},
	{ID: "white_rice", Name: "White rice (100g cooked)", Profile: MacroProfile{Cal: 130, P: 2.7, C: 28, F: 0.3}},
	{ID: "salmon", Name: "Salmon fillet (150g)", Profile: MacroProfile{Cal: 312, P: 30.5, C: 0, F: 20.3}},
	{ID: "greek_yogurt", Name: "Greek yogurt (170g)", Profile: MacroProfile{Cal: 100, P: 17, C: 6, F: 0.7}},
	{ID: "banana", Name: "Banana", Profile: MacroProfile{Cal: 105, P: 1.3, C: 27, F: 0.4}},
	{ID: "whey", Name: "Whey scoop (30g)", Profile: MacroProfile{Cal: 120, P: 24, C: 3, F: 1.5}},
	{ID: "olive_oil", Name: "Olive oil (1 tbsp)", Profile: MacroProfile{Cal: 119, P: 0, C: 0, F: 13.5}},
	{ID: "potato", Name: "Potato (200g)", Profile: MacroProfile{Cal: 154, P: 4.2, C: 34.8, F: 0.2}},
	{ID: "broccoli", Name: "Broccoli (150g)", Profile: MacroProfile{Cal: 51, P: 4.2, C: 10, F: 0.6}},
	{ID: "almonds", Name: "Almonds (28g)", Profile: MacroProfile{Cal: 164, P: 6, C: 6, F: 14.2}},
	{ID: "bread", Name: "Bread slice", Profile: MacroProfile{Cal: 80, P: 3, C: 14, F: 1}},
	{ID: "milk", Name: "Milk (250ml)", Profile: MacroProfile{Cal: 122, P: 8.1, C: 11.7, F: 4.8}},
	{ID: "pizza_slice", Name: "Pizza slice", Profile: MacroProfile{Cal: 285, P: 12, C: 36, F: 10.4}},
	{ID: "soda", Name: "Soda (330ml)", Profile: MacroProfile{Cal: 139, P: 0, C: 35, F: 0}},
	{ID: "chocolate", Name: "Chocolate bar (45g)", Profile: MacroProfile{Cal: 240, P: 3.4, C: 25.8, F: 13.4}},
}

// FoodDB resolves food ids against the built-in table unioned with
// user-defined entries. User entries are merged on top; the merge does not
// guard against id collisions with built-ins.
type FoodDB struct {
	byID map[string]Food
}

// NewFoodDB builds the merged lookup from built-ins plus user entries.
func NewFoodDB(userFoods []Food) *FoodDB {
	byID := make(map[string]Food, len(builtinFoods)+len(userFoods))
	for _, f := range builtinFoods {
		byID[f.ID] = f
	}
	for _, f := range userFoods {
		f.Custom = true
		byID[f.ID] = f
	}
	return &FoodDB{byID: byID}
}

// Lookup returns the food for id, or ok=false when unknown. Callers skip
// unknown ids silently rather than failing the aggregation.
func (db *FoodDB) Lookup(id string) (Food, bool) {
	f, ok := db.byID[id]
	return f, ok
}

// All returns every food in the merged database. No ordering guarantee.
func (db *FoodDB) All() []Food {
	out := make([]Food, 0, len(db.byID))
	for _, f := range db.byID {
		out = append(out, f)
	}
	return out
}
