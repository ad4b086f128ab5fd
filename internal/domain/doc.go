// Package domain models incidents from the VicEmergency public events feed.
//
// # Data Source
//
// VicEmergency publishes active emergency incidents for Victoria, Australia as
// a single geojson document at
// https://emergency.vic.gov.au/public/events-geojson.json. The feed aggregates
// records from several agencies (CFA, SES, FFMVic and others) and is refreshed
// continuously; this service polls it on a fixed interval.
//
// # Feed Conventions
//
// Geometry:
//
//	Most incidents carry a Point geometry in [lon, lat] order. Planned burns
//	and some warnings carry a Polygon or a GeometryCollection; for those the
//	first vertex is used as the representative coordinate. Statewide
//	advisories may carry no geometry at all.
//
// Identifiers:
//
//	The "id" and "sourceId" properties arrive as either JSON strings or
//	numbers depending on the source agency, hence [FlexString]. The ESTA
//	dispatch id ("estaid") is present only on CFA/SES incident records.
//
// Categories:
//
//	category1 is the primary classification ("Fire", "Flooding", "Tree Down",
//	"Rescue", ...), category2 a finer one ("Grass Fire", "Rescue Road Trap").
//	Warning records instead use the warning level as their classification:
//	Advice, Watch and Act, Emergency Warning.
//
// Statewide incidents:
//
//	Records with statewide="Y" cover the whole state rather than a point and
//	are used for broad advisories (total fire bans, flood watches). They are
//	excluded by default and bypass the radius filter when enabled.
//
// Sizes:
//
//	"size" and "sizeFmt" are free-form: numbers (hectares), strings
//	("SMALL"), or occasionally arrays. They are carried through as opaque
//	strings.
//
// Timestamps are RFC 3339 with a numeric offset (Australia/Melbourne local).
package domain
