package reconcile

import (
	"strings"

	"github.com/TripStitch/tripstitch-backend/types"
)

// ClassKind says what a type tag resolves to: a materializable entity
// category, one of the two non-entity classes, or nothing.
type ClassKind int

const (
	ClassUnknown ClassKind = iota
	ClassEntity
	ClassGeo
	ClassTip
)

// Classification is the result of mapping a fine-grained extracted type tag.
type Classification struct {
	Kind     ClassKind
	Category types.EntityCategory
}

// Classify maps a fine-grained extracted type tag to its trip-entity category.
// Geographic references and advisory tips are never materialized as entities;
// unknown tags are skipped, not errored.
func Classify(typeTag string) Classification {
	tag := strings.ToLower(strings.TrimSpace(typeTag))
	if tag == "" {
		return Classification{Kind: ClassUnknown}
	}
	if cat, ok := categoryTable[tag]; ok {
		return Classification{Kind: ClassEntity, Category: cat}
	}
	if geoTags[tag] {
		return Classification{Kind: ClassGeo}
	}
	if tipTags[tag] {
		return Classification{Kind: ClassTip}
	}
	return Classification{Kind: ClassUnknown}
}

// categoryTable is the flat tag-to-category dictionary. Tags come from the
// extraction pipeline's master type list.
var categoryTable = map[string]types.EntityCategory{
	// accommodation
	"hotel":          types.CategoryAccommodation,
	"hostel":         types.CategoryAccommodation,
	"guesthouse":     types.CategoryAccommodation,
	"guest_house":    types.CategoryAccommodation,
	"bnb":            types.CategoryAccommodation,
	"bed_and_breakfast": types.CategoryAccommodation,
	"resort":         types.CategoryAccommodation,
	"apartment":      types.CategoryAccommodation,
	"aparthotel":     types.CategoryAccommodation,
	"villa":          types.CategoryAccommodation,
	"motel":          types.CategoryAccommodation,
	"lodge":          types.CategoryAccommodation,
	"eco_lodge":      types.CategoryAccommodation,
	"ryokan":         types.CategoryAccommodation,
	"capsule_hotel":  types.CategoryAccommodation,
	"boutique_hotel": types.CategoryAccommodation,
	"homestay":       types.CategoryAccommodation,
	"farm_stay":      types.CategoryAccommodation,
	"camping":        types.CategoryAccommodation,
	"campground":     types.CategoryAccommodation,
	"glamping":       types.CategoryAccommodation,
	"cabin":          types.CategoryAccommodation,
	"bungalow":       types.CategoryAccommodation,
	"chalet":         types.CategoryAccommodation,
	"riad":           types.CategoryAccommodation,
	"accommodation":  types.CategoryAccommodation,

	// eatery
	"restaurant":       types.CategoryEatery,
	"cafe":             types.CategoryEatery,
	"coffee_shop":      types.CategoryEatery,
	"bar":              types.CategoryEatery,
	"cocktail_bar":     types.CategoryEatery,
	"rooftop_bar":      types.CategoryEatery,
	"wine_bar":         types.CategoryEatery,
	"pub":              types.CategoryEatery,
	"brewery":          types.CategoryEatery,
	"winery":           types.CategoryEatery,
	"bakery":           types.CategoryEatery,
	"bistro":           types.CategoryEatery,
	"brunch":           types.CategoryEatery,
	"street_food":      types.CategoryEatery,
	"food_stall":       types.CategoryEatery,
	"food_truck":       types.CategoryEatery,
	"food_market":      types.CategoryEatery,
	"night_market":     types.CategoryEatery,
	"izakaya":          types.CategoryEatery,
	"ramen":            types.CategoryEatery,
	"sushi":            types.CategoryEatery,
	"pizzeria":         types.CategoryEatery,
	"steakhouse":       types.CategoryEatery,
	"seafood":          types.CategoryEatery,
	"tapas":            types.CategoryEatery,
	"vegan_restaurant": types.CategoryEatery,
	"vegetarian_restaurant": types.CategoryEatery,
	"fine_dining":      types.CategoryEatery,
	"dessert":          types.CategoryEatery,
	"ice_cream":        types.CategoryEatery,
	"tea_house":        types.CategoryEatery,
	"eatery":           types.CategoryEatery,

	// attraction
	"museum":             types.CategoryAttraction,
	"gallery":            types.CategoryAttraction,
	"art_gallery":        types.CategoryAttraction,
	"temple":             types.CategoryAttraction,
	"shrine":             types.CategoryAttraction,
	"church":             types.CategoryAttraction,
	"cathedral":          types.CategoryAttraction,
	"mosque":             types.CategoryAttraction,
	"synagogue":          types.CategoryAttraction,
	"monastery":          types.CategoryAttraction,
	"castle":             types.CategoryAttraction,
	"palace":             types.CategoryAttraction,
	"fort":               types.CategoryAttraction,
	"fortress":           types.CategoryAttraction,
	"ruins":              types.CategoryAttraction,
	"archaeological_site": types.CategoryAttraction,
	"monument":           types.CategoryAttraction,
	"memorial":           types.CategoryAttraction,
	"landmark":           types.CategoryAttraction,
	"viewpoint":          types.CategoryAttraction,
	"observation_deck":   types.CategoryAttraction,
	"beach":              types.CategoryAttraction,
	"lake":               types.CategoryAttraction,
	"waterfall":          types.CategoryAttraction,
	"hot_spring":         types.CategoryAttraction,
	"onsen":              types.CategoryAttraction,
	"national_park":      types.CategoryAttraction,
	"nature_reserve":     types.CategoryAttraction,
	"park":               types.CategoryAttraction,
	"garden":             types.CategoryAttraction,
	"botanical_garden":   types.CategoryAttraction,
	"zoo":                types.CategoryAttraction,
	"aquarium":           types.CategoryAttraction,
	"theme_park":         types.CategoryAttraction,
	"amusement_park":     types.CategoryAttraction,
	"water_park":         types.CategoryAttraction,
	"hiking_trail":       types.CategoryAttraction,
	"trail":              types.CategoryAttraction,
	"mountain":           types.CategoryAttraction,
	"volcano":            types.CategoryAttraction,
	"cave":               types.CategoryAttraction,
	"market":             types.CategoryAttraction,
	"bazaar":             types.CategoryAttraction,
	"flea_market":        types.CategoryAttraction,
	"shopping_mall":      types.CategoryAttraction,
	"shopping_street":    types.CategoryAttraction,
	"theater":            types.CategoryAttraction,
	"opera_house":        types.CategoryAttraction,
	"concert_hall":       types.CategoryAttraction,
	"stadium":            types.CategoryAttraction,
	"bridge":             types.CategoryAttraction,
	"tower":              types.CategoryAttraction,
	"lighthouse":         types.CategoryAttraction,
	"square":             types.CategoryAttraction,
	"plaza":              types.CategoryAttraction,
	"old_town":           types.CategoryAttraction,
	"historic_district":  types.CategoryAttraction,
	"street_art":         types.CategoryAttraction,
	"observatory":        types.CategoryAttraction,
	"vineyard":           types.CategoryAttraction,
	"distillery":         types.CategoryAttraction,
	"boat_tour":          types.CategoryAttraction,
	"walking_tour":       types.CategoryAttraction,
	"food_tour":          types.CategoryAttraction,
	"day_trip":           types.CategoryAttraction,
	"snorkeling":         types.CategoryAttraction,
	"diving":             types.CategoryAttraction,
	"surfing":            types.CategoryAttraction,
	"kayaking":           types.CategoryAttraction,
	"ski_resort":         types.CategoryAttraction,
	"spa":                types.CategoryAttraction,
	"cooking_class":      types.CategoryAttraction,
	"workshop":           types.CategoryAttraction,
	"festival":           types.CategoryAttraction,
	"event":              types.CategoryAttraction,
	"nightclub":          types.CategoryAttraction,
	"live_music":         types.CategoryAttraction,
	"casino":             types.CategoryAttraction,
	"attraction":         types.CategoryAttraction,
	"activity":           types.CategoryAttraction,

	// service
	"laundry":            types.CategoryService,
	"pharmacy":           types.CategoryService,
	"hospital":           types.CategoryService,
	"clinic":             types.CategoryService,
	"atm":                types.CategoryService,
	"bank":               types.CategoryService,
	"currency_exchange":  types.CategoryService,
	"sim_card":           types.CategoryService,
	"mobile_shop":        types.CategoryService,
	"supermarket":        types.CategoryService,
	"convenience_store":  types.CategoryService,
	"luggage_storage":    types.CategoryService,
	"visa_office":        types.CategoryService,
	"embassy":            types.CategoryService,
	"tourist_information": types.CategoryService,
	"gear_rental":        types.CategoryService,
	"bike_rental":        types.CategoryService,
	"scooter_rental":     types.CategoryService,
	"gym":                types.CategoryService,
	"post_office":        types.CategoryService,
	"police_station":     types.CategoryService,
	"service":            types.CategoryService,

	// transportation
	"flight":           types.CategoryTransportation,
	"train":            types.CategoryTransportation,
	"bus":              types.CategoryTransportation,
	"ferry":            types.CategoryTransportation,
	"taxi":             types.CategoryTransportation,
	"car_rental":       types.CategoryTransportation,
	"metro":            types.CategoryTransportation,
	"tram":             types.CategoryTransportation,
	"cable_car":        types.CategoryTransportation,
	"funicular":        types.CategoryTransportation,
	"airport_transfer": types.CategoryTransportation,
	"ride_share":       types.CategoryTransportation,
	"boat":             types.CategoryTransportation,
	"cruise":           types.CategoryTransportation,
	"transportation":   types.CategoryTransportation,

	// contact
	"contact":       types.CategoryContact,
	"guide":         types.CategoryContact,
	"tour_guide":    types.CategoryContact,
	"tour_operator": types.CategoryContact,
	"travel_agent":  types.CategoryContact,
	"driver":        types.CategoryContact,
	"host":          types.CategoryContact,
}

// geoTags are geographic references: they enrich location context but are
// never stored as entities.
var geoTags = map[string]bool{
	"continent":    true,
	"country":      true,
	"state":        true,
	"province":     true,
	"region":       true,
	"prefecture":   true,
	"county":       true,
	"island":       true,
	"archipelago":  true,
	"city":         true,
	"town":         true,
	"village":      true,
	"neighborhood": true,
	"district":     true,
	"area":         true,
	"coast":        true,
	"valley":       true,
	"peninsula":    true,
	"bay":          true,
}

// tipTags are advisory notes: discarded by the reconciler.
var tipTags = map[string]bool{
	"tip":                true,
	"advice":             true,
	"warning":            true,
	"note":               true,
	"general_tip":        true,
	"safety_tip":         true,
	"budget_tip":         true,
	"packing_tip":        true,
	"etiquette":          true,
	"scam_warning":       true,
	"visa_tip":           true,
	"weather_note":       true,
	"best_time_to_visit": true,
	"local_custom":       true,
	"transport_tip":      true,
	"food_tip":           true,
}
