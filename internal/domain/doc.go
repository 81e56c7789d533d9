// Package domain models the net overseas migration (NOM) table charted by
// this service.
//
// # Data Source
//
// Figures come from the Australian Bureau of Statistics "National, state and
// territory population" release, table "Components of population change".
// The shipped extract (vic_nom_last5.csv) holds the last five financial years
// for Victoria, one row per year:
//
//	FinancialYear,NetMigrant
//	2019-20,100000
//	2020-21,30000
//	...
//
// Other columns may be present and are ignored. Workbook exports (.xlsx) with
// the same header row are accepted too.
//
// # Conventions
//
// Financial years are labels, not dates. "2020-21" means 1 July 2020 to
// 30 June 2021. Labels are compared byte-for-byte and never re-sorted: file
// order is chart order.
//
// Net migrant counts are arrivals minus departures and may be negative.
//
// # Outlier
//
// One year is highlighted as an outlier (by default "2020-21", the first full
// year of COVID-19 border closures). The label must match exactly one row.
// See [LocateOutlier] and [Partition].
package domain
