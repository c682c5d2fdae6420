package inflation

// cpiTable is a small embedded annual CPI-U index table (1913 base year),
// standing in for the live BLS series the original consults (out of scope
// per the external-collaborator boundary). Values are the calendar-year
// average CPI-U, scaled so 1913 == 100.
var cpiTable = map[int]float64{
	1913: 100.0, 1920: 207.3, 1930: 169.8, 1940: 139.9, 1950: 241.0,
	1960: 296.6, 1970: 388.4, 1980: 822.4, 1990: 1307.0, 2000: 1729.8,
	2010: 2184.0, 2015: 2370.0, 2016: 2401.0, 2017: 2454.0, 2018: 2510.0,
	2019: 2558.0, 2020: 2590.0, 2021: 2708.0, 2022: 2921.0, 2023: 3049.0,
	2024: 3139.0, 2025: 3220.0,
}

// latestYear is the most recent year with a table entry, used as the
// present-day reference point for an adjustment.
const latestYear = 2025
