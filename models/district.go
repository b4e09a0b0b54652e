package models

// District is immutable reference data for one administrative region.
// Seeded once (see store.SeedDistricts), read-only afterwards.
type District struct {
	Code      string `json:"code" bson:"code"`
	Name      string `json:"name" bson:"name"`
	StateCode string `json:"stateCode" bson:"stateCode"`
	StateName string `json:"stateName" bson:"stateName"`
}
