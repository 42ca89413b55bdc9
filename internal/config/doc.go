// Package config loads menu definitions and menud settings.
//
// A menu definition is a YAML document describing the tree:
//
//	title: Main
//	rootUrl: /app/
//	lang: fr
//	translations:
//	  fr:
//	    Home: Accueil
//	items:
//	  - label: Home
//	    url: /
//	    priority: 1
//	    styles:
//	      - icon: img/home.png
//	  - separator: true
//	  - label: Admin
//	    url: admin
//	    condition: admin
//	    propagate: [mode]
//
// Conditions are referenced by name and supplied by the caller through
// WithConditions; "always" and "never" are built in. Errors name the path of
// the offending item, e.g. items[2].children[0].
//
// Settings are resolved with viper from flags, MENUD_* environment variables
// and defaults.
package config
