package sqlinline

const QInsertPhoto = `--sql e630ebea-68eb-446b-8483-4bb7548f4b55
insert into photos (id, event_id, style_id, image_url, thumbnail_url, storage_path)
values ($1, $2, $3, $4, $5, $6);
`

const QSelectPhotoByID = `--sql c217c92c-321b-40ac-b948-c907e9ac715e
select id, event_id, style_id, image_url, thumbnail_url, storage_path, created_at
from photos
where id = $1;
`

const QListPhotosByEvent = `--sql e7f823a3-9304-4e8d-9cb0-5af9828388c4
select id, event_id, style_id, image_url, thumbnail_url, storage_path, created_at
from photos
where event_id = $1
order by created_at desc;
`

const QCountPhotosByEvent = `--sql bf087847-cbf2-4c54-be7f-5da005d2b496
select count(*) from photos where event_id = $1;
`

const QDeletePhoto = `--sql ebd5e2f0-c263-42ee-8214-63b5729bc25a
delete from photos where id = $1;
`
