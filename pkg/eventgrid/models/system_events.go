/*
Copyright 2026 The Knative Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package models

import "time"

// StorageBlobCreatedEventData is the payload of Microsoft.Storage.BlobCreated.
type StorageBlobCreatedEventData struct {
	API                string                 `json:"api,omitempty"`
	ClientRequestID    string                 `json:"clientRequestId,omitempty"`
	RequestID          string                 `json:"requestId,omitempty"`
	ETag               string                 `json:"eTag,omitempty"`
	ContentType        string                 `json:"contentType,omitempty"`
	ContentLength      *int64                 `json:"contentLength,omitempty"`
	ContentOffset      *int64                 `json:"contentOffset,omitempty"`
	BlobType           string                 `json:"blobType,omitempty"`
	URL                string                 `json:"url,omitempty"`
	Sequencer          string                 `json:"sequencer,omitempty"`
	Identity           string                 `json:"identity,omitempty"`
	StorageDiagnostics map[string]interface{} `json:"storageDiagnostics,omitempty"`
}

// StorageBlobDeletedEventData is the payload of Microsoft.Storage.BlobDeleted.
type StorageBlobDeletedEventData struct {
	API                string                 `json:"api,omitempty"`
	ClientRequestID    string                 `json:"clientRequestId,omitempty"`
	RequestID          string                 `json:"requestId,omitempty"`
	ContentType        string                 `json:"contentType,omitempty"`
	BlobType           string                 `json:"blobType,omitempty"`
	URL                string                 `json:"url,omitempty"`
	Sequencer          string                 `json:"sequencer,omitempty"`
	Identity           string                 `json:"identity,omitempty"`
	StorageDiagnostics map[string]interface{} `json:"storageDiagnostics,omitempty"`
}

// StorageBlobRenamedEventData is the payload of Microsoft.Storage.BlobRenamed.
type StorageBlobRenamedEventData struct {
	API                string                 `json:"api,omitempty"`
	ClientRequestID    string                 `json:"clientRequestId,omitempty"`
	RequestID          string                 `json:"requestId,omitempty"`
	SourceURL          string                 `json:"sourceUrl,omitempty"`
	DestinationURL     string                 `json:"destinationUrl,omitempty"`
	Sequencer          string                 `json:"sequencer,omitempty"`
	Identity           string                 `json:"identity,omitempty"`
	StorageDiagnostics map[string]interface{} `json:"storageDiagnostics,omitempty"`
}

// StorageDirectoryCreatedEventData is the payload of Microsoft.Storage.DirectoryCreated.
type StorageDirectoryCreatedEventData struct {
	API                string                 `json:"api,omitempty"`
	ClientRequestID    string                 `json:"clientRequestId,omitempty"`
	RequestID          string                 `json:"requestId,omitempty"`
	ETag               string                 `json:"eTag,omitempty"`
	URL                string                 `json:"url,omitempty"`
	Sequencer          string                 `json:"sequencer,omitempty"`
	Identity           string                 `json:"identity,omitempty"`
	StorageDiagnostics map[string]interface{} `json:"storageDiagnostics,omitempty"`
}

// StorageDirectoryDeletedEventData is the payload of Microsoft.Storage.DirectoryDeleted.
type StorageDirectoryDeletedEventData struct {
	API                string                 `json:"api,omitempty"`
	ClientRequestID    string                 `json:"clientRequestId,omitempty"`
	RequestID          string                 `json:"requestId,omitempty"`
	URL                string                 `json:"url,omitempty"`
	Recursive          string                 `json:"recursive,omitempty"`
	Sequencer          string                 `json:"sequencer,omitempty"`
	Identity           string                 `json:"identity,omitempty"`
	StorageDiagnostics map[string]interface{} `json:"storageDiagnostics,omitempty"`
}

// StorageDirectoryRenamedEventData is the payload of Microsoft.Storage.DirectoryRenamed.
type StorageDirectoryRenamedEventData struct {
	API                string                 `json:"api,omitempty"`
	ClientRequestID    string                 `json:"clientRequestId,omitempty"`
	RequestID          string                 `json:"requestId,omitempty"`
	SourceURL          string                 `json:"sourceUrl,omitempty"`
	DestinationURL     string                 `json:"destinationUrl,omitempty"`
	Sequencer          string                 `json:"sequencer,omitempty"`
	Identity           string                 `json:"identity,omitempty"`
	StorageDiagnostics map[string]interface{} `json:"storageDiagnostics,omitempty"`
}

// ResourceEventData is shared by every Resource Manager event.
type ResourceEventData struct {
	TenantID         string `json:"tenantId,omitempty"`
	SubscriptionID   string `json:"subscriptionId,omitempty"`
	ResourceGroup    string `json:"resourceGroup,omitempty"`
	ResourceProvider string `json:"resourceProvider,omitempty"`
	ResourceURI      string `json:"resourceUri,omitempty"`
	OperationName    string `json:"operationName,omitempty"`
	Status           string `json:"status,omitempty"`
	Authorization    string `json:"authorization,omitempty"`
	Claims           string `json:"claims,omitempty"`
	CorrelationID    string `json:"correlationId,omitempty"`
	HTTPRequest      string `json:"httpRequest,omitempty"`
}

// Resource Manager payloads, one distinct type per event type.
type (
	ResourceWriteSuccessData  ResourceEventData
	ResourceWriteFailureData  ResourceEventData
	ResourceWriteCancelData   ResourceEventData
	ResourceDeleteSuccessData ResourceEventData
	ResourceDeleteFailureData ResourceEventData
	ResourceDeleteCancelData  ResourceEventData
	ResourceActionSuccessData ResourceEventData
	ResourceActionFailureData ResourceEventData
	ResourceActionCancelData  ResourceEventData
)

// EventHubCaptureFileCreatedEventData is the payload of Microsoft.EventHub.CaptureFileCreated.
type EventHubCaptureFileCreatedEventData struct {
	FileURL          string     `json:"fileurl,omitempty"`
	FileType         string     `json:"fileType,omitempty"`
	PartitionID      string     `json:"partitionId,omitempty"`
	SizeInBytes      *int64     `json:"sizeInBytes,omitempty"`
	EventCount       *int64     `json:"eventCount,omitempty"`
	FirstSequence    *int64     `json:"firstSequenceNumber,omitempty"`
	LastSequence     *int64     `json:"lastSequenceNumber,omitempty"`
	FirstEnqueueTime *time.Time `json:"firstEnqueueTime,omitempty"`
	LastEnqueueTime  *time.Time `json:"lastEnqueueTime,omitempty"`
}

// ContainerRegistryEventRequest is the request that generated a registry event.
type ContainerRegistryEventRequest struct {
	ID        string `json:"id,omitempty"`
	Addr      string `json:"addr,omitempty"`
	Host      string `json:"host,omitempty"`
	Method    string `json:"method,omitempty"`
	Useragent string `json:"useragent,omitempty"`
}

// ContainerRegistryEventTarget is the artifact a registry event is about.
type ContainerRegistryEventTarget struct {
	MediaType  string `json:"mediaType,omitempty"`
	Size       *int64 `json:"size,omitempty"`
	Digest     string `json:"digest,omitempty"`
	Length     *int64 `json:"length,omitempty"`
	Repository string `json:"repository,omitempty"`
	URL        string `json:"url,omitempty"`
	Tag        string `json:"tag,omitempty"`
}

// ContainerRegistryEventActor is the agent that initiated a registry event.
type ContainerRegistryEventActor struct {
	Name string `json:"name,omitempty"`
}

// ContainerRegistryEventSource is the registry node that generated an event.
type ContainerRegistryEventSource struct {
	Addr       string `json:"addr,omitempty"`
	InstanceID string `json:"instanceID,omitempty"`
}

// ContainerRegistryEventData is shared by the container registry image events.
type ContainerRegistryEventData struct {
	ID        string                         `json:"id,omitempty"`
	Timestamp *time.Time                     `json:"timestamp,omitempty"`
	Action    string                         `json:"action,omitempty"`
	Target    *ContainerRegistryEventTarget  `json:"target,omitempty"`
	Request   *ContainerRegistryEventRequest `json:"request,omitempty"`
	Actor     *ContainerRegistryEventActor   `json:"actor,omitempty"`
	Source    *ContainerRegistryEventSource  `json:"source,omitempty"`
}

type (
	ContainerRegistryImagePushedEventData  ContainerRegistryEventData
	ContainerRegistryImageDeletedEventData ContainerRegistryEventData
)

// SubscriptionValidationEventData is sent by Event Grid to validate a new
// subscription. The subscriber echoes ValidationCode back, or calls ValidationURL.
type SubscriptionValidationEventData struct {
	ValidationCode string `json:"validationCode,omitempty"`
	ValidationURL  string `json:"validationUrl,omitempty"`
}

// SubscriptionValidationResponse is the body answering a validation event.
type SubscriptionValidationResponse struct {
	ValidationResponse string `json:"validationResponse"`
}

// SubscriptionDeletedEventData is the payload of Microsoft.EventGrid.SubscriptionDeletedEvent.
type SubscriptionDeletedEventData struct {
	EventSubscriptionID string `json:"eventSubscriptionId,omitempty"`
}

// MediaJobState is the state of a media job or job output.
type MediaJobState string

const (
	MediaJobStateCanceled   MediaJobState = "Canceled"
	MediaJobStateCanceling  MediaJobState = "Canceling"
	MediaJobStateError      MediaJobState = "Error"
	MediaJobStateFinished   MediaJobState = "Finished"
	MediaJobStateProcessing MediaJobState = "Processing"
	MediaJobStateQueued     MediaJobState = "Queued"
	MediaJobStateScheduled  MediaJobState = "Scheduled"
)

// MediaJobErrorDetail details a job output error.
type MediaJobErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// MediaJobError is the error of a job output.
type MediaJobError struct {
	Code     string                `json:"code,omitempty"`
	Message  string                `json:"message,omitempty"`
	Category string                `json:"category,omitempty"`
	Retry    string                `json:"retry,omitempty"`
	Details  []MediaJobErrorDetail `json:"details,omitempty"`
}

// MediaJobOutput is the output of a media job.
type MediaJobOutput struct {
	ODataType string         `json:"@odata.type,omitempty"`
	Error     *MediaJobError `json:"error,omitempty"`
	Label     string         `json:"label,omitempty"`
	Progress  int64          `json:"progress"`
	State     MediaJobState  `json:"state,omitempty"`
}

// MediaJobOutputProcessingEventData is the payload of Microsoft.Media.JobOutputProcessing.
type MediaJobOutputProcessingEventData struct {
	PreviousState      MediaJobState     `json:"previousState,omitempty"`
	Output             *MediaJobOutput   `json:"output,omitempty"`
	JobCorrelationData map[string]string `json:"jobCorrelationData,omitempty"`
}
