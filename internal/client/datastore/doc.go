// Package datastore is the REST client for the per-user expense documents
// kept in the hosted realtime database.
//
// Documents live at {endpoint}/{userId}/expenses/{id}.json and every call is
// authorized with the identity token in the "auth" query parameter.
package datastore
