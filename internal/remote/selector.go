package remote

import "strings"

// SelectResource returns the first listed resource whose descriptive
// name contains the machine spec, compared case-insensitively. Listing
// order is the provider's ranking and is not re-ranked here.
func SelectResource(resources []Resource, machine string) (Resource, error) {
	needle := strings.ToLower(machine)
	for _, r := range resources {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			return r, nil
		}
	}
	return Resource{}, &ResourceNotFoundError{Machine: machine}
}
