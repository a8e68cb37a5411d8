// Package domain models per-zone air quality readings and the forecasting
// cycle applied to them.
//
// # Data Source
//
// Readings originate from an upstream collector that publishes one JSON
// message per zone to the Kafka source topic. Each message carries the zone
// name, the current concentration of every tracked pollutant, the current
// weather and optionally the zone's daily history. Values are expected to be
// within the documented instrument ranges; see [InputRanges].
//
// # Pollutants and Limits
//
// Four pollutants are tracked, always evaluated in this canonical order:
//
//	PM2.5  fine particulate matter      limit  37.0 μg/m³
//	PM10   coarse particulate matter    limit  75.0 μg/m³
//	NO2    nitrogen dioxide             limit 150.0 μg/m³
//	SO2    sulfur dioxide               limit 125.0 μg/m³
//
// Limits follow the Ecuadorian TULSMA air quality standard (Texto Unificado
// de Legislación Secundaria del Ministerio del Ambiente). See [DefaultLimits].
//
// # Monitoring Cycle
//
// Every zone goes through the same stages, each returning a new [Zone]:
//
//	history   30 daily snapshots, oldest first; synthesized around the
//	          current reading when the collector supplies none
//	average   arithmetic mean over non-negative snapshots becomes the baseline
//	forecast  recency-weighted mean of the last 7 days (weights 7..1),
//	          scaled by the seasonal factor and weather corrections
//	classify  forecast levels against limits yield an [AlertTier]
//
// Seasonal factors model agricultural burning in Ecuador:
//
//	Aug, Sep        ×1.5  dry season
//	Jul, Oct        ×1.2  transition
//	Mar, Apr, May   ×0.8  wet season
//	other months    ×1.0
//
// Weather corrections: wind above 15 km/h disperses pollutants (×0.8);
// relative humidity above 80% retains them (×1.1). Both may apply.
//
// # Alert Tiers
//
//	Normal      no pollutant above 75% of its limit
//	Preventive  at least one pollutant above 75%
//	Emergency   any pollutant above 100%, or two or more above 75%
//
// # Qualitative Bands
//
// Reports describe each level by its percentage of the limit:
//
//	≤50 Good | ≤75 Regular | ≤100 Poor | >100 Hazardous
package domain
