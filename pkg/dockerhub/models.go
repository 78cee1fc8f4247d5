package dockerhub

import "time"

// ImageStatus is the status of a single image of a tag.
type ImageStatus string

const (
	ImageStatusActive   ImageStatus = "active"
	ImageStatusInactive ImageStatus = "inactive"
)

// Page is one page of tags of a repository.
// Count is the total number of tags, not the length of Results.
type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next,omitempty"`
	Previous *string `json:"previous,omitempty"`
	Results  []Tag   `json:"results"`
}

type Tag struct {
	Creator             int        `json:"creator"`
	ID                  int        `json:"id"`
	Images              []Image    `json:"images"`
	LastUpdated         time.Time  `json:"last_updated"`
	LastUpdater         int        `json:"last_updater"`
	LastUpdaterUsername string     `json:"last_updater_username"`
	Name                string     `json:"name"`
	Repository          int        `json:"repository"`
	FullSize            int64      `json:"full_size"`
	V2                  bool       `json:"v2"`
	TagStatus           string     `json:"tag_status"`
	TagLastPulled       *time.Time `json:"tag_last_pulled,omitempty"`
	TagLastPushed       *time.Time `json:"tag_last_pushed,omitempty"`
	MediaType           string     `json:"media_type,omitempty"`
	ContentType         string     `json:"content_type,omitempty"`
	Digest              string     `json:"digest,omitempty"`
}

type Image struct {
	Architecture string      `json:"architecture"`
	Features     *string     `json:"features,omitempty"`
	Variant      *string     `json:"variant,omitempty"`
	Digest       string      `json:"digest"`
	OS           string      `json:"os"`
	OSFeatures   *string     `json:"os_features,omitempty"`
	OSVersion    *string     `json:"os_version,omitempty"`
	Size         int64       `json:"size"`
	Status       ImageStatus `json:"status"`
	LastPulled   *time.Time  `json:"last_pulled,omitempty"`
	LastPushed   *time.Time  `json:"last_pushed,omitempty"`
}


type errInfo struct {
	Namespace  string `json:"namespace"`
	Repository string `json:"repository"`
}
